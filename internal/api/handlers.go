package api

import (
	"fmt"
	"html"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strings"
)

// handleIndex lists the generated pages and documents with links into
// /docs/.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	entries, err := os.ReadDir(s.docsDir)
	if err != nil {
		s.log.Error("read docs dir failed", "dir", s.docsDir, "error", err)
		http.Error(w, "docs directory unavailable", http.StatusInternalServerError)
		return
	}

	var pages, documents []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		switch {
		case strings.HasSuffix(name, ".html"):
			pages = append(pages, name)
		case strings.HasSuffix(name, ".docx"):
			documents = append(documents, name)
		}
	}
	sort.Strings(pages)
	sort.Strings(documents)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, "<!doctype html>\n<html><head><title>docweave</title></head><body>\n<h1>Generated documentation</h1>\n")
	writeLinkList(w, "Pages", pages)
	writeLinkList(w, "Documents", documents)
	fmt.Fprint(w, "</body></html>\n")
}

func writeLinkList(w http.ResponseWriter, title string, names []string) {
	if len(names) == 0 {
		return
	}
	fmt.Fprintf(w, "<h2>%s</h2>\n<ul>\n", title)
	for _, name := range names {
		fmt.Fprintf(w, "<li><a href=\"/docs/%s\">%s</a></li>\n", url.PathEscape(name), html.EscapeString(name))
	}
	fmt.Fprint(w, "</ul>\n")
}
