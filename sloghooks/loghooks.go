// Package sloghooks logs cache expiry events through log/slog with
// sampling and key redaction, so hooks can stay enabled on hot write paths
// without flooding logs or leaking key material.
package sloghooks

import (
	"cmp"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/lazycache"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	ExpiredEvery uint64
	// Optional key redactor. Defaults to SHA-256 prefix.
	Redact func(string) string
}

type Hooks[K cmp.Ordered, V any] struct {
	l    *slog.Logger
	opts Options

	expiredCtr atomic.Uint64
}

var _ lazycache.Hooks[string, int] = (*Hooks[string, int])(nil)

func New[K cmp.Ordered, V any](l *slog.Logger, opts Options) *Hooks[K, V] {
	return &Hooks[K, V]{l: l, opts: opts}
}

func (h *Hooks[K, V]) redact(k K) string {
	s := fmt.Sprint(k)
	if h.opts.Redact != nil {
		return h.opts.Redact(s)
	}
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:8])
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks[K, V]) EntryExpired(key K, _ V) {
	if h.l == nil || !sample(h.opts.ExpiredEvery, &h.expiredCtr) {
		return
	}
	h.l.Debug("lazycache.entry_expired",
		"key", h.redact(key))
}
