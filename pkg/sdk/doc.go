// Package plagcheck is an in-process Go client for plagiarism detection.
// It wires the same use cases as the HTTP service without a network hop.
//
// Without a database option documents are kept in memory; WithRedis and
// WithValkey persist them. Without WithEmbedder a local hashing embedder
// is used, so the client works fully offline.
//
//	client, _ := plagcheck.New(ctx, plagcheck.WithThreshold(0.75))
//	defer client.Close()
//
//	sim, _ := client.Compare(ctx, "the cat sat on the mat", "a cat sat on a mat")
//	fmt.Println(sim.Score, sim.IsPlagiarized)
//
//	doc, _ := client.Documents().Upload(ctx, "essay.txt", essay)
//	report, _ := client.Check(ctx, doc.ID)
//	for _, m := range report.Matches {
//	    fmt.Println(m.Filename, m.Score)
//	}
package plagcheck
