package chi

// Diagnostic codes returned in ErrorResponse.Code.
const (
	CodeInvalidMonth      = "invalid_month"
	CodeInvalidDay        = "invalid_day"
	CodeTitleNotFound     = "title_not_found"
	CodeInsufficientVotes = "insufficient_votes"
	CodeDirectorNotFound  = "director_not_found"
	CodeMovieNotFound     = "movie_not_found"
	CodeBadRequest        = "bad_request"
	CodeUnauthorized      = "unauthorized"
	CodeRateLimited       = "rate_limited"
	CodeTimeout           = "timeout"
	CodeInternalError     = "internal_error"
)

// ErrorResponse is the payload of diagnostics and protocol errors.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// InfoResponse describes the service.
type InfoResponse struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Version     string `json:"version"`
}

// MonthCountResponse is returned by GET /cantidad_filmaciones_mes/{mes}.
type MonthCountResponse struct {
	Month   string `json:"month"`
	Count   int    `json:"count"`
	Message string `json:"message"`
}

// WeekdayCountResponse is returned by GET /cantidad_filmaciones_dia/{dia}.
type WeekdayCountResponse struct {
	Day     string `json:"day"`
	Count   int    `json:"count"`
	Message string `json:"message"`
}

// TitleScoreResponse is returned by GET /score_titulo/{titulo}.
type TitleScoreResponse struct {
	Title      string  `json:"title"`
	Year       int     `json:"year"`
	Popularity float64 `json:"popularity"`
	Message    string  `json:"message"`
}

// TitleVotesResponse is returned by GET /votos_titulo/{titulo}.
type TitleVotesResponse struct {
	Title       string  `json:"title"`
	Year        int     `json:"year"`
	VoteCount   int     `json:"vote_count"`
	VoteAverage float64 `json:"vote_average"`
	Message     string  `json:"message"`
}

// ActorResponse is returned by GET /get_actor/{nombre_actor}.
type ActorResponse struct {
	Actor       string   `json:"actor"`
	Count       int      `json:"count"`
	TotalReturn float64  `json:"total_return"`
	MeanReturn  *float64 `json:"mean_return"`
	Message     string   `json:"message"`
}

// DirectorFilmResponse is one film in DirectorResponse.
type DirectorFilmResponse struct {
	Title   string  `json:"titulo"`
	Year    int     `json:"anio"`
	Return  float64 `json:"retorno_pelicula"`
	Budget  float64 `json:"budget_pelicula"`
	Revenue float64 `json:"revenue_pelicula"`
}

// DirectorResponse is returned by GET /get_director/{nombre_director}.
type DirectorResponse struct {
	Director    string                 `json:"director"`
	TotalReturn float64                `json:"retorno_total_director"`
	Films       []DirectorFilmResponse `json:"peliculas"`
}

// RecommendResponse is returned by GET /recomendacion/{titulo}.
type RecommendResponse struct {
	Titles []string `json:"lista recomendada"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
