// Package chi exposes the catalog and recommendation operations over HTTP.
package chi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Dai-S2/PI---1-MLOps/internal/domain"
	logpkg "github.com/Dai-S2/PI---1-MLOps/internal/logger"
	"github.com/Dai-S2/PI---1-MLOps/internal/version"
	cataloguc "github.com/Dai-S2/PI---1-MLOps/internal/usecase/catalog"
	healthuc "github.com/Dai-S2/PI---1-MLOps/internal/usecase/health"
)

const (
	appTitle       = "Recomendación de peliculas"
	appDescription = "Esta es una aplicación que permite realizar consultas sobre películas personalizadas. " +
		"Creada por Daiana Salcedo (9/2024)"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server serves the movies API.
type Server struct {
	catalog       *cataloguc.Service
	recommender   domain.Recommender
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	catalog *cataloguc.Service,
	recommender domain.Recommender,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		catalog:     catalog,
		recommender: recommender,
		health:      health,
		logger:      logger,
	}
	s.errorHandlers = []errorHandler{
		diagnosticHandler(domain.ErrInvalidMonth, CodeInvalidMonth, "El mes %s no es válido"),
		diagnosticHandler(domain.ErrInvalidWeekday, CodeInvalidDay, "El día %s no es válido"),
		diagnosticHandler(domain.ErrInsufficientVotes, CodeInsufficientVotes,
			"No se encontraron suficientes votos para la filmación %s"),
		diagnosticHandler(domain.ErrTitleNotFound, CodeTitleNotFound, "No se encontró la filmación %s"),
		diagnosticHandler(domain.ErrDirectorNotFound, CodeDirectorNotFound, "No se encontró el director %s"),
		diagnosticHandler(domain.ErrMovieNotIndexed, CodeMovieNotFound, "Película no encontrada"),
	}
	return s
}

// Routes registers the API on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/", s.Info)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Get("/cantidad_filmaciones_mes/{mes}", s.CountByMonth)
	r.Get("/cantidad_filmaciones_dia/{dia}", s.CountByWeekday)
	r.Get("/score_titulo/{titulo}", s.ScoreByTitle)
	r.Get("/votos_titulo/{titulo}", s.VotesByTitle)
	r.Get("/get_actor/{nombre_actor}", s.ActorStats)
	r.Get("/get_director/{nombre_director}", s.DirectorStats)
	r.Get("/recomendacion/{titulo}", s.Recommend)
}

// Info handles GET /.
func (s *Server) Info(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, InfoResponse{
		Title:       appTitle,
		Description: appDescription,
		Version:     version.Version,
	})
}

// CountByMonth handles GET /cantidad_filmaciones_mes/{mes}.
func (s *Server) CountByMonth(w http.ResponseWriter, r *http.Request) {
	mes, ok := s.pathParam(w, r, "mes")
	if !ok {
		return
	}

	res, err := s.catalog.CountByMonth(mes)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, MonthCountResponse{
		Month: res.Month,
		Count: res.Count,
		Message: fmt.Sprintf("%d cantidad de películas fueron estrenadas en el mes de %s",
			res.Count, res.Month),
	})
}

// CountByWeekday handles GET /cantidad_filmaciones_dia/{dia}.
func (s *Server) CountByWeekday(w http.ResponseWriter, r *http.Request) {
	dia, ok := s.pathParam(w, r, "dia")
	if !ok {
		return
	}

	res, err := s.catalog.CountByWeekday(dia)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, WeekdayCountResponse{
		Day:   res.Day,
		Count: res.Count,
		Message: fmt.Sprintf("%d cantidad de películas fueron estrenadas en los días %s",
			res.Count, res.Day),
	})
}

// ScoreByTitle handles GET /score_titulo/{titulo}.
func (s *Server) ScoreByTitle(w http.ResponseWriter, r *http.Request) {
	titulo, ok := s.pathParam(w, r, "titulo")
	if !ok {
		return
	}

	res, err := s.catalog.ScoreByTitle(titulo)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, TitleScoreResponse{
		Title:      res.Title,
		Year:       res.Year,
		Popularity: res.Popularity,
		Message: fmt.Sprintf("La película %s fue estrenada en el año %d con una popularidad de %s",
			res.Title, res.Year, formatFloat(res.Popularity)),
	})
}

// VotesByTitle handles GET /votos_titulo/{titulo}.
func (s *Server) VotesByTitle(w http.ResponseWriter, r *http.Request) {
	titulo, ok := s.pathParam(w, r, "titulo")
	if !ok {
		return
	}

	res, err := s.catalog.VotesByTitle(titulo)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, TitleVotesResponse{
		Title:       res.Title,
		Year:        res.Year,
		VoteCount:   res.VoteCount,
		VoteAverage: res.VoteAverage,
		Message: fmt.Sprintf("La película %s fue estrenada en el año %d. La misma cuenta con un total de %d "+
			"valoraciones, con un promedio de %s", res.Title, res.Year, res.VoteCount, formatFloat(res.VoteAverage)),
	})
}

// ActorStats handles GET /get_actor/{nombre_actor}.
func (s *Server) ActorStats(w http.ResponseWriter, r *http.Request) {
	name, ok := s.pathParam(w, r, "nombre_actor")
	if !ok {
		return
	}

	res := s.catalog.ActorStats(name)
	var mean float64
	if res.MeanReturn != nil {
		mean = *res.MeanReturn
	}

	writeJSON(w, http.StatusOK, ActorResponse{
		Actor:       res.Actor,
		Count:       res.Count,
		TotalReturn: res.TotalReturn,
		MeanReturn:  res.MeanReturn,
		Message: fmt.Sprintf("El actor %s ha participado de %d cantidad de filmaciones, el mismo ha conseguido "+
			"un retorno de %s con un promedio de %s por filmación",
			res.Actor, res.Count, formatFloat(res.TotalReturn), formatFloat(mean)),
	})
}

// DirectorStats handles GET /get_director/{nombre_director}.
func (s *Server) DirectorStats(w http.ResponseWriter, r *http.Request) {
	name, ok := s.pathParam(w, r, "nombre_director")
	if !ok {
		return
	}

	res, err := s.catalog.DirectorStats(name)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	films := make([]DirectorFilmResponse, len(res.Films))
	for i, f := range res.Films {
		films[i] = DirectorFilmResponse{
			Title:   f.Title,
			Year:    f.Year,
			Return:  f.Return,
			Budget:  f.Budget,
			Revenue: f.Revenue,
		}
	}

	writeJSON(w, http.StatusOK, DirectorResponse{
		Director:    res.Director,
		TotalReturn: res.TotalReturn,
		Films:       films,
	})
}

// Recommend handles GET /recomendacion/{titulo}.
func (s *Server) Recommend(w http.ResponseWriter, r *http.Request) {
	titulo, ok := s.pathParam(w, r, "titulo")
	if !ok {
		return
	}

	ctx := logpkg.With(r.Context(), zap.String("title", titulo))
	titles, err := s.recommender.Recommend(ctx, titulo)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, RecommendResponse{Titles: titles})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// pathParam returns a path segment with its percent-encoding undone. chi
// matches on RawPath only when the path holds escapes that Path cannot
// represent (such as %2F); only then is the segment still encoded. On
// failure it writes a 400 and returns false.
func (s *Server) pathParam(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	v := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		if v == "" {
			s.badPathParam(w, name, errors.New("empty value"))
			return "", false
		}
		return v, true
	}
	err := runtime.BindStyledParameterWithOptions("simple", name, v, &v,
		runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationPath,
			Explode:       false,
			Required:      true,
		})
	if err != nil {
		s.badPathParam(w, name, err)
		return "", false
	}
	return v, true
}

func (s *Server) badPathParam(w http.ResponseWriter, name string, err error) {
	s.logger.Debug("invalid path parameter", zap.String("param", name), zap.Error(err))
	writeError(w, http.StatusBadRequest, CodeBadRequest, fmt.Sprintf("invalid path parameter %q", name))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// formatFloat renders v with the fewest digits that round-trip.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// diagnosticHandler answers a matching sentinel with a 200 diagnostic. A %s
// in format is replaced by the error's subject.
func diagnosticHandler(sentinel error, code, format string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		msg := format
		if strings.Contains(format, "%s") {
			msg = fmt.Sprintf(format, domain.SubjectOf(err))
		}
		writeError(w, http.StatusOK, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	for _, h := range s.errorHandlers {
		if h(w, err) {
			s.logger.Debug("diagnostic", zap.Error(err))
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
