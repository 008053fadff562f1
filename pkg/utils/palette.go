package utils

import (
	"image/color"
	"log"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/gonewx/fireworks/internal/particle"
)

// palette 预解析的粒子颜色表（按 particle.Color 索引）
var palette = buildPalette()

func buildPalette() map[particle.Color]colorful.Color {
	p := make(map[particle.Color]colorful.Color, len(particle.Palette))
	for _, c := range particle.Palette {
		parsed, err := colorful.Hex(c.Hex())
		if err != nil {
			log.Printf("[Palette] Warning: bad hex %q for %v: %v", c.Hex(), c, err)
			continue
		}
		p[c] = parsed
	}
	return p
}

// ParticleColor 返回粒子颜色的 colorful 表示
//
// 返回：
//   - colorful.Color: 颜色值
//   - bool: 颜色是否可绘制（Invisible 和 NoColor 返回 false）
func ParticleColor(c particle.Color) (colorful.Color, bool) {
	col, ok := palette[c]
	return col, ok
}

// ParticleRGBA 返回粒子颜色的 RGBA 值，alpha 取值 [0, 1]
// 不可绘制的颜色返回完全透明
func ParticleRGBA(c particle.Color, alpha float64) color.RGBA {
	col, ok := palette[c]
	if !ok {
		return color.RGBA{}
	}
	return RGBA(col, alpha)
}

// RGBA 将 colorful 颜色转换为预乘 alpha 的 color.RGBA
func RGBA(col colorful.Color, alpha float64) color.RGBA {
	alpha = Clamp01(alpha)
	r, g, b := col.Clamped().RGB255()
	a := alpha * 255
	return color.RGBA{
		R: uint8(float64(r) * alpha),
		G: uint8(float64(g) * alpha),
		B: uint8(float64(b) * alpha),
		A: uint8(a),
	}
}
