package handlers

import (
	"fmt"
	"net/http"
	"runtime"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
)

func servePlainText(w http.ResponseWriter, s string) {
	w.Header().Set("Content-Type", "text/plain")
	w.Header().Set("Content-Length", strconv.Itoa(len(s)))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(s)) // nolint
}

// Debug reports build information of the running binary.
func Debug(version, sha1ver, buildTime string) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		a := []string{
			fmt.Sprintf("url: %s %s", r.Method, r.RequestURI),
			fmt.Sprintf("version: v%s", version),
			fmt.Sprintf("commit: %s", sha1ver),
			fmt.Sprintf("built on: %s", buildTime),
			fmt.Sprintf("go: %s", runtime.Version()),
			fmt.Sprintf("api version called: %s", mux.Vars(r)["apiVersion"]),
		}

		servePlainText(rw, strings.Join(a, "\n"))
	})
}
