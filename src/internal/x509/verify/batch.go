// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509verify

import (
	"context"
	"runtime"
	"sync"
)

// BatchResult is the outcome for one certificate of a batch.
type BatchResult struct {
	Index  int
	Report *Report
	Err    error
}

// VerifyBatch verifies certs concurrently. With a nil signer every
// certificate is checked as self-signed.
//
// Each worker uses its own forked verifier, so v itself is not touched.
// Results are returned in input order. Certificates not started before ctx
// is done carry ctx's error.
func (v *Verifier) VerifyBatch(ctx context.Context, certs [][]byte, signer *Signer) []BatchResult {
	results := make([]BatchResult, len(certs))
	sem := make(chan struct{}, runtime.GOMAXPROCS(0))
	pool := sync.Pool{New: func() any { return v.fork() }}

	var wg sync.WaitGroup
	for i, der := range certs {
		results[i].Index = i
		if err := ctx.Err(); err != nil {
			results[i].Err = err
			continue
		}
		select {
		case <-ctx.Done():
			results[i].Err = ctx.Err()
			continue
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			w := pool.Get().(*Verifier)
			defer pool.Put(w)

			if signer == nil {
				results[i].Report, results[i].Err = w.VerifySelfSigned(der)
				return
			}
			results[i].Report, results[i].Err = w.VerifyWith(der, *signer)
		}()
	}
	wg.Wait()
	return results
}
