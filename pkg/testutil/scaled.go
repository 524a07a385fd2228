package testutil

import (
	"os"
	"strconv"
	"time"

	"src.elv.sh/rangebar/pkg/env"
)

// TimeScaleEnv is the environment variable that scales the durations used in
// tests. It is useful on slow machines.
const TimeScaleEnv = env.RANGEBAR_TEST_TIME_SCALE

// Scaled returns d scaled by $RANGEBAR_TEST_TIME_SCALE. If the environment
// variable does not exist or contains an invalid value, the scale defaults to
// 1.
func Scaled(d time.Duration) time.Duration {
	return time.Duration(float64(d) * getTestTimeScale())
}

func getTestTimeScale() float64 {
	s := os.Getenv(TimeScaleEnv)
	if s == "" {
		return 1
	}
	scale, err := strconv.ParseFloat(s, 64)
	if err != nil || scale <= 0 {
		return 1
	}
	return scale
}
