package sqlite

import (
	"context"
	"fmt"
	"testing"
	"time"

	"shiguang/internal/domain"
)

// BenchmarkListEvents benchmarks listing a populated event table
func BenchmarkListEvents(b *testing.B) {
	s := openTestStore(b)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 1000; i++ {
		e := sampleEvent(fmt.Sprintf("e%04d", i), base.Add(time.Duration(i)*time.Minute))
		if err := s.CreateEvent(ctx, e); err != nil {
			b.Fatalf("failed to seed event: %v", err)
		}
	}

	b.ResetTimer()
	for b.Loop() {
		if _, err := s.ListEvents(ctx, domain.EventFilter{OwnerID: "u1"}); err != nil {
			b.Fatalf("list failed: %v", err)
		}
	}
}

// BenchmarkOpen benchmarks cold startup: open + schema + close
func BenchmarkOpen(b *testing.B) {
	dir := b.TempDir()

	b.ResetTimer()
	for i := 0; b.Loop(); i++ {
		s, err := Open(fmt.Sprintf("%s/bench-%d.db", dir, i))
		if err != nil {
			b.Fatalf("failed to open store: %v", err)
		}
		s.Close()
	}
}
