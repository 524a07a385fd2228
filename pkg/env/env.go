// Package env keeps names of environment variables with special significance to
// rangebar.
package env

// Environment variables with special significance to rangebar.
//
// RANGEBAR_TEST_TIME_SCALE is only significant when running unit tests.
const (
	RANGEBAR_NORMAL_URL      = "RANGEBAR_NORMAL_URL"
	RANGEBAR_FIXED_URL       = "RANGEBAR_FIXED_URL"
	RANGEBAR_TEST_TIME_SCALE = "RANGEBAR_TEST_TIME_SCALE"
)
