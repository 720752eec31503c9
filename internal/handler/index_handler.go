package handler

import (
	"context"
	"net/http"

	"schoolplanner/internal/weather"
)

type WeatherFetcher interface {
	Fetch(ctx context.Context, city string) *weather.Reading
}

type IndexHandler struct {
	weather WeatherFetcher
	view    *Renderer
}

func NewIndexHandler(w WeatherFetcher, view *Renderer) *IndexHandler {
	return &IndexHandler{weather: w, view: view}
}

// Index renders the landing page, with the weather card when a reading is available.
func (i *IndexHandler) Index(w http.ResponseWriter, r *http.Request) {
	i.view.Page(w, r, http.StatusOK, "index.html", View{
		Title:   "Home",
		Weather: i.weather.Fetch(r.Context(), ""),
	})
}
