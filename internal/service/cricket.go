package service

import (
	"database/sql"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// BallsFromOvers converts a cricket overs figure to a ball count. "3.4" means
// 3 overs and 4 balls; the ball digit is clamped to 5. A bare integer is
// whole overs unless it is larger than any real over count, in which case it
// is already a ball count.
func BallsFromOvers(overs sql.NullFloat64) int {
	if !overs.Valid {
		return 0
	}
	s := strconv.FormatFloat(overs.Float64, 'f', -1, 64)
	if o, b, found := strings.Cut(s, "."); found {
		whole, err := strconv.Atoi(o)
		if err != nil {
			whole = 0
		}
		ball, err := strconv.Atoi(b)
		if err != nil {
			ball = 0
		}
		if ball > 5 {
			ball = 5
		}
		return whole*6 + ball
	}
	val := int(overs.Float64)
	if val <= 80 {
		return val * 6
	}
	return val
}

// OversFromBalls renders a ball count back into overs notation.
func OversFromBalls(balls int) string {
	if balls <= 0 {
		return "0"
	}
	return fmt.Sprintf("%d.%d", balls/6, balls%6)
}

// StrikeRate is runs per hundred balls.
func StrikeRate(runs, balls float64) float64 {
	if balls <= 0 {
		return 0
	}
	return round2(runs / balls * 100)
}

// Economy is runs conceded per over.
func Economy(runs float64, balls int) float64 {
	if balls <= 0 {
		return 0
	}
	return round2(runs / (float64(balls) / 6.0))
}

// Average divides with a zero-safe denominator, for batting averages and
// similar ratios.
func Average(num float64, den int) float64 {
	if den <= 0 {
		return 0
	}
	return round2(num / float64(den))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// pct is a zero-safe percentage rounded to one decimal.
func pct(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	return round1(part / whole * 100)
}
