package web

import (
	"embed"
	"html/template"
	"io"

	"livecounter-backend/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

var pagePaths = map[model.Resource]string{
	model.ResourceInstagramProfile:     "/instagram/profile",
	model.ResourceInstagramPost:        "/instagram/post",
	model.ResourceTiktokProfile:        "/tiktok/profile",
	model.ResourceTiktokVideo:          "/tiktok/video",
	model.ResourceYoutubeChannelByID:   "/youtube/channel",
	model.ResourceYoutubeChannelByName: "/youtube/channel",
	model.ResourceYoutubeVideo:         "/youtube/video",
	model.ResourceYoutubeSearchChannel: "/youtube/search/channel",
	model.ResourceYoutubeSearchVideo:   "/youtube/search/video",
}

var templateFuncs = template.FuncMap{
	"pageFor": func(r model.Resource) string {
		if p, ok := pagePaths[r]; ok {
			return p
		}
		return "/"
	},
}

var pages = map[string]*template.Template{
	"index":  mustParse("index"),
	"lookup": mustParse("lookup"),
}

func mustParse(name string) *template.Template {
	return template.Must(template.New(name).Funcs(templateFuncs).
		ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html"))
}

func renderTemplate(w io.Writer, name string, data any) error {
	return pages[name].ExecuteTemplate(w, "layout", data)
}
