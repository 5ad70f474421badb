package bucket

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"loanengine/internal/ratelimit/models"
)

// One client hammering the decision endpoint.
func BenchmarkAllow_SingleClient(b *testing.B) {
	store := New()
	ctx := context.Background()
	key := models.NewIPKey("203.0.113.1")

	for b.Loop() {
		_, _ = store.Allow(ctx, key, 60, time.Minute)
	}
}

// Many distinct client IPs, as behind a public load balancer.
func BenchmarkAllow_ManyClients_Parallel(b *testing.B) {
	store := New()
	ctx := context.Background()
	keys := make([]string, 4096)
	for i := range keys {
		keys[i] = models.NewIPKey(fmt.Sprintf("10.%d.%d.%d", i>>16&0xff, i>>8&0xff, i&0xff))
	}

	var next atomic.Uint64
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			key := keys[next.Add(1)%uint64(len(keys))]
			_, _ = store.Allow(ctx, key, 60, time.Minute)
		}
	})
}
