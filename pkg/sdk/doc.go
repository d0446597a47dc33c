// Package ordino provides an embedded Go client for the ordino zoning
// question-answering engine, backed by Redis with the search module.
//
// The client wires the full pipeline in-process: retrieval, answer
// cache, formatting and generation. Bring your own embedding and chat
// providers:
//
//	client, _ := ordino.New(ctx,
//	    ordino.WithRedis("localhost:6379", ""),
//	    ordino.WithEmbedder(myEmbedder),
//	    ordino.WithGenerator(myGenerator),
//	)
//	defer client.Close()
//
//	_, _ = client.Ingest(ctx, "loudoun", ordinanceText)
//	answer, _ := client.Ask(ctx, "What are the setbacks in AR-1?", "loudoun")
//
// Without a Generator, curated and previously cached answers are still
// served; questions that need generation return ErrGenerationProvider.
package ordino
