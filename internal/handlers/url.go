package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/serroba/shortlink/internal/analytics"
	"github.com/serroba/shortlink/internal/shortener"
	"go.uber.org/zap"
)

// NotFoundText is the plain-text body of an unknown short link redirect.
const NotFoundText = "Short URL not found"

// LinkService is the subset of shortener.Service the handlers depend on.
type LinkService interface {
	Create(ctx context.Context, longURL string) (*shortener.ShortLink, error)
	Resolve(ctx context.Context, id shortener.ID) (*shortener.Resolution, error)
	Analytics(ctx context.Context, id shortener.ID) (*shortener.Analytics, error)
}

// URLHandler serves link creation, analytics and redirects.
type URLHandler struct {
	service LinkService
	baseURL string
	events  *analytics.Publishers
	logger  *zap.Logger
}

// NewURLHandler creates a new URL handler. baseURL prefixes returned short URLs.
func NewURLHandler(
	service LinkService,
	baseURL string,
	events *analytics.Publishers,
	logger *zap.Logger,
) *URLHandler {
	return &URLHandler{
		service: service,
		baseURL: strings.TrimRight(baseURL, "/"),
		events:  events,
		logger:  logger,
	}
}

func (h *URLHandler) CreateShortLink(ctx context.Context, req *CreateLinkRequest) (*CreateLinkResponse, error) {
	link, err := h.service.Create(ctx, req.Body.URL)
	if err != nil {
		return nil, toHTTPError(err, h.logger)
	}

	meta := RequestMetaFromContext(ctx)
	h.publish(ctx, string(link.ID), func(ctx context.Context) error {
		return h.events.LinkCreated(ctx, &analytics.LinkCreatedEvent{
			ShortID:     string(link.ID),
			RedirectURL: link.RedirectURL,
			CreatedAt:   link.CreatedAt,
			ClientIP:    meta.ClientIP,
			UserAgent:   meta.UserAgent,
		})
	})

	shortURL := h.baseURL + "/" + string(link.ID)

	resp := &CreateLinkResponse{}
	resp.Location = shortURL
	resp.Body.ID = string(link.ID)
	resp.Body.ShortURL = shortURL
	resp.Body.RedirectURL = link.RedirectURL
	resp.Body.CreatedAt = link.CreatedAt.UnixMilli()

	return resp, nil
}

func (h *URLHandler) GetAnalytics(ctx context.Context, req *AnalyticsRequest) (*AnalyticsResponse, error) {
	stats, err := h.service.Analytics(ctx, shortener.ID(req.ShortID))
	if err != nil {
		return nil, toHTTPError(err, h.logger)
	}

	resp := &AnalyticsResponse{}
	resp.Body.TotalClicks = stats.TotalClicks
	resp.Body.Analytics = make([]VisitBody, 0, len(stats.Visits))

	for _, v := range stats.Visits {
		resp.Body.Analytics = append(resp.Body.Analytics, VisitBody{Timestamp: v.Timestamp.UnixMilli()})
	}

	return resp, nil
}

func (h *URLHandler) Redirect(ctx context.Context, req *RedirectRequest) (*RedirectResponse, error) {
	res, err := h.service.Resolve(ctx, shortener.ID(req.ShortID))
	if err != nil {
		if errors.Is(err, shortener.ErrNotFound) {
			return &RedirectResponse{
				Status:      http.StatusNotFound,
				ContentType: "text/plain; charset=utf-8",
				Body:        []byte(NotFoundText),
			}, nil
		}

		return nil, toHTTPError(err, h.logger)
	}

	meta := RequestMetaFromContext(ctx)
	h.publish(ctx, req.ShortID, func(ctx context.Context) error {
		return h.events.LinkVisited(ctx, &analytics.LinkVisitedEvent{
			ShortID:   req.ShortID,
			VisitedAt: res.VisitedAt,
			ClientIP:  meta.ClientIP,
			UserAgent: meta.UserAgent,
			Referrer:  meta.Referrer,
		})
	})

	return &RedirectResponse{
		Status:   http.StatusFound,
		Location: res.RedirectURL,
	}, nil
}

// publish sends an event without letting a broker failure affect the response.
func (h *URLHandler) publish(ctx context.Context, shortID string, send func(context.Context) error) {
	if h.events == nil {
		return
	}

	if err := send(context.WithoutCancel(ctx)); err != nil {
		h.logger.Error("failed to publish link event",
			zap.String("shortId", shortID),
			zap.Error(err),
		)
	}
}
