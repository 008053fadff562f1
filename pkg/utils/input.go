// Package utils 提供通用工具函数
package utils

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// AppendJustPressedPointers 追加本帧新按下的所有指针位置
// 每个新触摸点和鼠标左键点击各算一次，多指触摸可以同时发射多枚烟花
//
// 参数：
//   - dst: 追加目标，可为 nil（复用切片避免每帧分配）
//
// 返回：
//   - []image.Point: 追加后的切片
func AppendJustPressedPointers(dst []image.Point) []image.Point {
	// 首先检查触摸输入（移动设备）
	var touchIDs [8]ebiten.TouchID
	for _, id := range inpututil.AppendJustPressedTouchIDs(touchIDs[:0]) {
		x, y := ebiten.TouchPosition(id)
		dst = append(dst, image.Pt(x, y))
	}

	// 其次检查鼠标输入（桌面设备）
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		dst = append(dst, image.Pt(x, y))
	}
	return dst
}

// GetPointerPosition 获取当前指针位置（触摸或鼠标）
// 优先返回触摸位置，如果没有触摸则返回鼠标位置
func GetPointerPosition() (int, int) {
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		return ebiten.TouchPosition(touchIDs[0])
	}
	return ebiten.CursorPosition()
}

// IsTouchDevice 检测当前是否为触摸设备
// 通过检查是否有活动的触摸来判断
func IsTouchDevice() bool {
	return len(ebiten.AppendTouchIDs(nil)) > 0
}

// StagePoint 将窗口坐标换算为舞台坐标
// 舞台按 Layout 缩放时，ebiten 已经把光标换算为逻辑坐标，这里只做边界裁剪
func StagePoint(p image.Point, width, height int) image.Point {
	return image.Pt(clampInt(p.X, 0, width), clampInt(p.Y, 0, height))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
