package utils

import "math"

// Approach 向目标值逼近 1/divisor 的差值，speed 为帧速倍率
// 用于天空光照等每帧平滑过渡的量
func Approach(current, target, divisor, speed float64) float64 {
	return current + (target-current)/divisor*speed
}

// Clamp01 将值限制在 [0, 1]
func Clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
