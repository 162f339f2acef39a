// SPDX-License-Identifier: MIT

package server

import (
	"encoding/binary"
	"hash/fnv"
	"math"
	"strconv"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// resultCache memoises alignment responses. A nil *resultCache is a
// disabled cache: Get always misses and Set does nothing.
type resultCache struct {
	c *gocache.Cache
}

func newResultCache(ttl, cleanup time.Duration) *resultCache {
	return &resultCache{c: gocache.New(ttl, cleanup)}
}

func (rc *resultCache) Get(key string) (AlignResponse, bool) {
	if rc == nil {
		return AlignResponse{}, false
	}
	v, ok := rc.c.Get(key)
	if !ok {
		return AlignResponse{}, false
	}
	resp, ok := v.(AlignResponse)

	return resp, ok
}

func (rc *resultCache) Set(key string, resp AlignResponse) {
	if rc == nil {
		return
	}
	rc.c.SetDefault(key, resp)
}

func (rc *resultCache) Len() int {
	if rc == nil {
		return 0
	}

	return rc.c.ItemCount()
}

// cacheKey hashes the normalised request with FNV-64a: metric name (lower
// case), band (-1 when unrestricted), path flag, then the IEEE-754 bits of
// every element of a and b, each sequence prefixed with its length.
func cacheKey(req *AlignRequest) string {
	h := fnv.New64a()
	var buf [8]byte

	writeU64 := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = h.Write(buf[:])
	}

	metric := strings.ToLower(req.Metric)
	if metric == "" {
		metric = "abs"
	}
	_, _ = h.Write([]byte(metric))
	_, _ = h.Write([]byte{0})

	band := int64(-1)
	if req.Band != nil {
		band = int64(*req.Band)
	}
	writeU64(uint64(band))
	if req.Path {
		writeU64(1)
	} else {
		writeU64(0)
	}

	for _, seq := range [2][]float64{req.A, req.B} {
		writeU64(uint64(len(seq)))
		for _, x := range seq {
			if x == 0 {
				x = 0 // fold -0 into +0
			}
			writeU64(math.Float64bits(x))
		}
	}

	return strconv.FormatUint(h.Sum64(), 16)
}
