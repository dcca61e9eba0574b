package ioext

import (
	"errors"
	"io"
	"math"
)

// ErrLimitExceeded 読み込み上限を超えるデータが存在する
var ErrLimitExceeded = errors.New("input exceeds the size limit")

// ReadAtMost rから最大limitバイトを読み込みます
//
// limitを超える部分は読まずに捨てられ、エラーにはなりません
func ReadAtMost(r io.Reader, limit uint64) ([]byte, error) {
	if limit > math.MaxInt64 {
		return io.ReadAll(r)
	}
	return io.ReadAll(io.LimitReader(r, int64(limit)))
}

// ReadWithin rを最後まで読み込みます
//
// limitバイトを超えるデータがある場合はErrLimitExceededを返します
func ReadWithin(r io.Reader, limit uint64) ([]byte, error) {
	if limit >= math.MaxInt64 {
		return io.ReadAll(r)
	}
	b, err := io.ReadAll(io.LimitReader(r, int64(limit)+1))
	if err != nil {
		return nil, err
	}
	if uint64(len(b)) > limit {
		return nil, ErrLimitExceeded
	}
	return b, nil
}
