// Package movies embeds the movie catalog queries and content-based
// recommendations in-process, without running the HTTP service.
//
// Load the two parquet tables the service uses:
//
//	client, err := movies.New(ctx,
//	    movies.WithParquet("data/api_consultas.parquet", "data/movies_recomendaciones.parquet"),
//	    movies.WithLogger(slog.Default()),
//	)
//	titles, err := client.Recommend(ctx, "Toy Story")
//
// or hand it rows directly:
//
//	client, err := movies.New(ctx, movies.WithMovies(rows))
//	n, err := client.CountByMonth(ctx, "octubre")
//
// Diagnostics come back as errors wrapping the exported sentinels; use
// errors.Is to tell them apart and Subject to read the offending value.
package movies
