package game

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // 注册 JPEG 解码器
	_ "image/png"  // 注册 PNG 解码器
	"log"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/decker502/waz/pkg/config"
)

// 僵尸精灵表的网格划分（11 列 x 12 行）
const (
	zombieSheetCols = 11
	zombieSheetRows = 12
)

// 资源文件名（相对 assets 目录）；全部可选，缺失时降级
const (
	assetZombieSheet = "ZombieSprite_166x144.png"
	assetBrain       = "brain.png"
	assetBackground  = "game_background.png"
	assetHammer      = "hammer.png"
	assetFont        = "font.ttf"
	assetMusic       = "bg_music.mp3"
	assetHitSFX      = "hit.mp3"
	assetLevelUpSFX  = "level_up.wav"
)

// ZombieFrames 僵尸精灵图集
//
// 启动时切片一次后不可变，所有僵尸实例共享同一份帧引用。
// 三组动画帧：常态（8 帧）、攻击（4 帧）、死亡（4 帧）。
type ZombieFrames struct {
	Normal []*ebiten.Image
	Attack []*ebiten.Image
	Death  []*ebiten.Image
	// 单帧在精灵表中的原始尺寸，绘制时据此缩放到配置尺寸
	SrcWidth, SrcHeight int
}

// ResourceManager 集中管理游戏资源
//
// 所有资源在启动时加载一次并缓存，之后只读共享。
// 每项资源都是可选的：缺失或损坏时记录警告并保持 nil，
// 由渲染方降级为程序化绘制（墓穴圆圈、椭圆僵尸、调试文字）。
type ResourceManager struct {
	assetsDir string

	zombieFrames *ZombieFrames
	brainImage   *ebiten.Image
	background   *ebiten.Image
	hammer       *ebiten.Image
	fontSource   *text.GoTextFaceSource
	fontFaces    map[float64]*text.GoTextFace

	musicPath    string // 背景音乐文件路径（空 = 缺失）
	hitSFXPath   string
	levelSFXPath string
}

// NewResourceManager 创建资源管理器并加载全部可选资源
func NewResourceManager(assetsDir string) *ResourceManager {
	rm := &ResourceManager{
		assetsDir: assetsDir,
		fontFaces: make(map[float64]*text.GoTextFace),
	}
	rm.loadAll()
	return rm
}

// loadAll 加载全部资源，逐项降级
func (rm *ResourceManager) loadAll() {
	if sheet, err := rm.loadImage(assetZombieSheet); err != nil {
		log.Printf("[Resource] zombie sheet unavailable, using procedural drawing: %v", err)
	} else {
		rm.zombieFrames = sliceZombieSheet(sheet)
		log.Printf("[Resource] zombie sheet loaded: %d normal / %d attack / %d death frames",
			len(rm.zombieFrames.Normal), len(rm.zombieFrames.Attack), len(rm.zombieFrames.Death))
	}

	if img, err := rm.loadImage(assetBrain); err != nil {
		log.Printf("[Resource] brain sprite unavailable: %v", err)
	} else {
		rm.brainImage = img
	}

	if img, err := rm.loadImage(assetBackground); err != nil {
		log.Printf("[Resource] background unavailable, using procedural holes: %v", err)
	} else {
		rm.background = img
	}

	if img, err := rm.loadImage(assetHammer); err != nil {
		log.Printf("[Resource] hammer cursor unavailable: %v", err)
	} else {
		rm.hammer = img
	}

	if err := rm.loadFont(assetFont); err != nil {
		log.Printf("[Resource] font unavailable, using debug text: %v", err)
	}

	rm.musicPath = rm.optionalAudioPath(assetMusic)
	rm.hitSFXPath = rm.optionalAudioPath(assetHitSFX)
	rm.levelSFXPath = rm.optionalAudioPath(assetLevelUpSFX)
}

// loadImage 加载并解码一张图片
func (rm *ResourceManager) loadImage(name string) (*ebiten.Image, error) {
	path := filepath.Join(rm.assetsDir, name)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return ebiten.NewImageFromImage(img), nil
}

// loadFont 加载 TTF 字体源
func (rm *ResourceManager) loadFont(name string) error {
	path := filepath.Join(rm.assetsDir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read font %s: %w", path, err)
	}
	source, err := text.NewGoTextFaceSource(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to parse font %s: %w", path, err)
	}
	rm.fontSource = source
	return nil
}

// optionalAudioPath 检查可选音频文件，缺失时返回空串
func (rm *ResourceManager) optionalAudioPath(name string) string {
	path := filepath.Join(rm.assetsDir, name)
	if _, err := os.Stat(path); err != nil {
		log.Printf("[Resource] audio unavailable: %s", path)
		return ""
	}
	return path
}

// sliceZombieSheet 将精灵表按网格切出三组动画帧
func sliceZombieSheet(sheet *ebiten.Image) *ZombieFrames {
	bounds := sheet.Bounds()
	normal, attack, death := zombieFrameRects(bounds.Dx(), bounds.Dy())

	frames := &ZombieFrames{
		SrcWidth:  bounds.Dx() / zombieSheetCols,
		SrcHeight: bounds.Dy() / zombieSheetRows,
	}
	for _, r := range normal {
		frames.Normal = append(frames.Normal, sheet.SubImage(r).(*ebiten.Image))
	}
	for _, r := range attack {
		frames.Attack = append(frames.Attack, sheet.SubImage(r).(*ebiten.Image))
	}
	for _, r := range death {
		frames.Death = append(frames.Death, sheet.SubImage(r).(*ebiten.Image))
	}
	return frames
}

// zombieFrameRects 计算三组动画帧在精灵表中的矩形
// 位置是精灵表固有的：常态帧占前两行各 4 帧，攻击帧在第 3 行，
// 死亡帧在第 11 行
func zombieFrameRects(sheetW, sheetH int) (normal, attack, death []image.Rectangle) {
	frameW := sheetW / zombieSheetCols
	frameH := sheetH / zombieSheetRows

	cell := func(col, row int) image.Rectangle {
		return image.Rect(col*frameW, row*frameH, (col+1)*frameW, (row+1)*frameH)
	}

	normalCells := [][2]int{
		{0, 0}, {1, 0}, {2, 0}, {3, 0},
		{0, 1}, {1, 1}, {2, 1}, {3, 1},
	}
	attackCells := [][2]int{{4, 2}, {5, 2}, {6, 2}, {7, 2}}
	deathCells := [][2]int{{0, 10}, {1, 10}, {2, 10}, {3, 10}}

	for _, c := range normalCells {
		normal = append(normal, cell(c[0], c[1]))
	}
	for _, c := range attackCells {
		attack = append(attack, cell(c[0], c[1]))
	}
	for _, c := range deathCells {
		death = append(death, cell(c[0], c[1]))
	}
	return normal, attack, death
}

// ZombieFrames 返回僵尸图集（nil = 程序化降级）
func (rm *ResourceManager) ZombieFrames() *ZombieFrames {
	return rm.zombieFrames
}

// BrainImage 返回大脑精灵（nil = 程序化降级）
func (rm *ResourceManager) BrainImage() *ebiten.Image {
	return rm.brainImage
}

// Background 返回背景图（nil = 程序化降级）
func (rm *ResourceManager) Background() *ebiten.Image {
	return rm.background
}

// Hammer 返回锤子光标图（nil = 系统光标）
func (rm *ResourceManager) Hammer() *ebiten.Image {
	return rm.hammer
}

// FontFace 返回指定字号的字体（nil = 调试文字降级）
// 同一字号的 face 会被缓存复用
func (rm *ResourceManager) FontFace(size float64) *text.GoTextFace {
	if rm.fontSource == nil {
		return nil
	}
	if face, ok := rm.fontFaces[size]; ok {
		return face
	}
	face := &text.GoTextFace{
		Source:    rm.fontSource,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	rm.fontFaces[size] = face
	return face
}

// MusicPath 返回背景音乐路径（空 = 缺失）
func (rm *ResourceManager) MusicPath() string { return rm.musicPath }

// HitSFXPath 返回击中音效路径（空 = 缺失）
func (rm *ResourceManager) HitSFXPath() string { return rm.hitSFXPath }

// LevelUpSFXPath 返回升级音效路径（空 = 缺失）
func (rm *ResourceManager) LevelUpSFXPath() string { return rm.levelSFXPath }

// ZombieDrawScale 计算把原始帧缩放到配置显示尺寸所需的比例
func (rm *ResourceManager) ZombieDrawScale(zcfg *config.ZombieConfig) (sx, sy float64) {
	if rm.zombieFrames == nil || rm.zombieFrames.SrcWidth == 0 || rm.zombieFrames.SrcHeight == 0 {
		return 1, 1
	}
	targetW := float64(zcfg.SpriteBaseWidth) * zcfg.SpriteScale
	targetH := float64(zcfg.SpriteBaseHeight) * zcfg.SpriteScale
	return targetW / float64(rm.zombieFrames.SrcWidth), targetH / float64(rm.zombieFrames.SrcHeight)
}
