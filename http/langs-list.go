package http

import (
	"net/http"

	"github.com/develevate/backend/httpjson"
	"github.com/develevate/backend/logger"
)

type languageView struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Compiled bool   `json:"compiled"`
}

func (httpserver *HttpServer) listLanguages(w http.ResponseWriter, r *http.Request) {
	_ = logger.FromContext(r.Context())

	langs := httpserver.judgeSrvc.Languages()
	views := make([]languageView, 0, len(langs))
	for _, l := range langs {
		if !l.Enabled {
			continue
		}
		views = append(views, languageView{
			ID:       l.ID,
			FullName: l.FullName,
			Compiled: l.Compiled(),
		})
	}

	httpjson.WriteSuccessJson(w, views)
}
