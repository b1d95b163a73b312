package token

import "lupin/internal/source"

func sourceSpan(start, end uint32) source.Span {
	return source.Span{Start: start, End: end}
}
