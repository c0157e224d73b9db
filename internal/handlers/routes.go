package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// RegisterRoutes registers the link routes. The redirect route is a
// catch-all and must not shadow static paths, which chi matches first.
func RegisterRoutes(api huma.API, h *URLHandler) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-short-link",
		Method:        http.MethodPost,
		Path:          "/url",
		Summary:       "Create short link",
		Description:   "Stores the URL under a newly generated 8 character id.",
		Tags:          []string{"Links"},
		DefaultStatus: http.StatusCreated,
	}, h.CreateShortLink)

	huma.Register(api, huma.Operation{
		OperationID: "get-link-analytics",
		Method:      http.MethodGet,
		Path:        "/url/analytics/{shortId}",
		Summary:     "Get link analytics",
		Description: "Returns the total click count and the chronological visit history.",
		Tags:        []string{"Links"},
	}, h.GetAnalytics)

	huma.Register(api, huma.Operation{
		OperationID:   "redirect",
		Method:        http.MethodGet,
		Path:          "/{shortId}",
		Summary:       "Redirect to original URL",
		Description:   "Records a visit and redirects to the stored URL. Unknown ids get a plain-text 404.",
		Tags:          []string{"Links"},
		DefaultStatus: http.StatusFound,
		Responses: map[string]*huma.Response{
			"302": {Description: "Redirect to the stored URL"},
			"404": {
				Description: "Unknown short id",
				Content: map[string]*huma.MediaType{
					"text/plain": {Schema: &huma.Schema{Type: huma.TypeString}},
				},
			},
		},
	}, h.Redirect)
}
