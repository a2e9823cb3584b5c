package lesson

import (
	"fmt"
	"net/http"

	"github.com/kingdomliving/soulfood/catalog"
	resp "github.com/kingdomliving/soulfood/response"

	"github.com/go-chi/chi"
	"go.uber.org/zap"
)

// ServiceOptions contains the configuration for the lesson Service router
type ServiceOptions struct {
	LessonManager *Manager
	Series        map[string]catalog.Series
	Logger        *zap.Logger
}

// Service is the lesson API router
type Service struct {
	ServiceOptions
}

// NewService will create an instance of the lesson API router
func NewService(option ServiceOptions) (*Service, error) {
	if option.LessonManager == nil {
		return nil, fmt.Errorf("nil LessonManager is invalid")
	}
	if option.Logger == nil {
		return nil, fmt.Errorf("nil Logger is invalid")
	}
	if option.Series == nil {
		option.Series = catalog.DefinedSeries()
	}
	return &Service{
		ServiceOptions: option,
	}, nil
}

// LessonView is a lesson enriched with its series availability info
type LessonView struct {
	Lesson
	SeriesInfo catalog.Series `json:"seriesInfo"`
}

func (s *Service) withSeriesInfo(l Lesson) LessonView {
	return LessonView{
		Lesson:     l,
		SeriesInfo: s.Series[l.Series],
	}
}

func (s *Service) listLessons(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	lessons, err := s.LessonManager.List(ctx, ListOption{
		Series:  r.URL.Query().Get("series"),
		Edition: r.URL.Query().Get("edition"),
	})
	if err != nil {
		s.Logger.Error("Unable to list lessons",
			zap.Error(err),
		)
		resp.WriteError(w, r, resp.ErrUnexpected())
		return
	}

	views := make([]LessonView, 0, len(lessons))
	for _, l := range lessons {
		views = append(views, s.withSeriesInfo(l))
	}
	resp.WriteResponse(w, r, views)
}

func (s *Service) getLesson(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	lesson, err := s.LessonManager.GetByID(ctx, id)
	if err != nil {
		s.Logger.Error("Unable to get lesson",
			zap.String("LessonID", id),
			zap.Error(err),
		)
		resp.WriteError(w, r, resp.ErrUnexpected())
		return
	}
	if lesson == nil {
		resp.WriteError(w, r, resp.ErrNotFound().AddMessages("Lesson not found"))
		return
	}

	resp.WriteResponse(w, r, s.withSeriesInfo(*lesson))
}

// Router will return the routes under lesson API
func (s *Service) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/", s.listLessons)
	r.Get("/{id}", s.getLesson)

	return r
}
