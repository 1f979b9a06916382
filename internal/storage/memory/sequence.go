package memory

import "sync/atomic"

// sequence имитирует BIGSERIAL: значения начинаются с 1 и не переиспользуются.
type sequence struct {
	last atomic.Int64
}

func (s *sequence) next() int64 {
	return s.last.Add(1)
}

func removeID(ids []int64, id int64) []int64 {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
