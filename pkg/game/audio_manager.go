package game

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// 音频采样率
const audioSampleRate = 48000

// AudioManager 音频管理器
//
// 背景音乐循环播放，音效即点即播（Rewind 后重放）。
// 每个音频文件都是可选的：加载失败记录警告，对应播放调用变为空操作。
// 管理器本身为 nil 时所有方法同样为空操作（无声模式，测试和模拟器用）。
// 音量实时取自 SettingsManager，静音时生效音量为 0。
type AudioManager struct {
	context  *audio.Context
	settings *SettingsManager

	musicPlayer   *audio.Player
	hitPlayer     *audio.Player
	levelUpPlayer *audio.Player
}

// NewAudioManager 创建音频管理器并加载全部可选音频
//
// 参数:
//   - resources: 提供音频文件路径（空路径 = 缺失，跳过加载）
//   - settings: 音量与静音设置来源
func NewAudioManager(resources *ResourceManager, settings *SettingsManager) *AudioManager {
	am := &AudioManager{
		context:  audio.NewContext(audioSampleRate),
		settings: settings,
	}

	if path := resources.MusicPath(); path != "" {
		player, err := am.loadLooping(path)
		if err != nil {
			log.Printf("[Audio] background music unavailable: %v", err)
		} else {
			am.musicPlayer = player
		}
	}
	if path := resources.HitSFXPath(); path != "" {
		player, err := am.loadOneShot(path)
		if err != nil {
			log.Printf("[Audio] hit sound unavailable: %v", err)
		} else {
			am.hitPlayer = player
		}
	}
	if path := resources.LevelUpSFXPath(); path != "" {
		player, err := am.loadOneShot(path)
		if err != nil {
			log.Printf("[Audio] level-up sound unavailable: %v", err)
		} else {
			am.levelUpPlayer = player
		}
	}

	return am
}

// decodeStream 按扩展名解码音频数据
func decodeStream(path string, reader *bytes.Reader) (io.ReadSeeker, int64, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".mp3":
		stream, err := mp3.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to decode MP3 audio %s: %w", path, err)
		}
		return stream, stream.Length(), nil
	case ".ogg":
		stream, err := vorbis.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to decode OGG audio %s: %w", path, err)
		}
		return stream, stream.Length(), nil
	case ".wav":
		stream, err := wav.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to decode WAV audio %s: %w", path, err)
		}
		return stream, stream.Length(), nil
	default:
		return nil, 0, fmt.Errorf("unsupported audio format: %s (supported: .mp3, .ogg, .wav)", ext)
	}
}

// loadLooping 加载循环播放的背景音乐
func (am *AudioManager) loadLooping(path string) (*audio.Player, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio file %s: %w", path, err)
	}
	stream, length, err := decodeStream(path, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	loopStream := audio.NewInfiniteLoop(stream, length)
	player, err := am.context.NewPlayer(loopStream)
	if err != nil {
		return nil, fmt.Errorf("failed to create audio player for %s: %w", path, err)
	}
	return player, nil
}

// loadOneShot 加载单次播放的音效（不循环）
func (am *AudioManager) loadOneShot(path string) (*audio.Player, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio file %s: %w", path, err)
	}
	stream, _, err := decodeStream(path, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	player, err := am.context.NewPlayer(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to create audio player for %s: %w", path, err)
	}
	return player, nil
}

// StartMusic 开始播放背景音乐（已在播放或缺失时为空操作）
func (am *AudioManager) StartMusic() {
	if am == nil || am.musicPlayer == nil || am.musicPlayer.IsPlaying() {
		return
	}
	am.musicPlayer.SetVolume(am.settings.EffectiveMusicVolume())
	am.musicPlayer.Play()
}

// PauseMusic 暂停背景音乐
func (am *AudioManager) PauseMusic() {
	if am == nil || am.musicPlayer == nil || !am.musicPlayer.IsPlaying() {
		return
	}
	am.musicPlayer.Pause()
}

// ResumeMusic 恢复背景音乐
func (am *AudioManager) ResumeMusic() {
	if am == nil || am.musicPlayer == nil || am.musicPlayer.IsPlaying() {
		return
	}
	am.musicPlayer.Play()
}

// PlayHit 播放击中音效（每次从头播放）
func (am *AudioManager) PlayHit() {
	if am == nil {
		return
	}
	am.playOneShot(am.hitPlayer)
}

// PlayLevelUp 播放升级音效
func (am *AudioManager) PlayLevelUp() {
	if am == nil {
		return
	}
	am.playOneShot(am.levelUpPlayer)
}

func (am *AudioManager) playOneShot(player *audio.Player) {
	if player == nil {
		return
	}
	player.Pause()
	if err := player.Rewind(); err != nil {
		log.Printf("[Audio] Warning: failed to rewind sound: %v", err)
		return
	}
	player.SetVolume(am.settings.EffectiveSoundVolume())
	player.Play()
}

// ApplyVolumes 把当前设置同步到所有播放器
// 音量滑块拖动或静音切换后调用
func (am *AudioManager) ApplyVolumes() {
	if am == nil {
		return
	}
	if am.musicPlayer != nil {
		am.musicPlayer.SetVolume(am.settings.EffectiveMusicVolume())
	}
	if am.hitPlayer != nil {
		am.hitPlayer.SetVolume(am.settings.EffectiveSoundVolume())
	}
	if am.levelUpPlayer != nil {
		am.levelUpPlayer.SetVolume(am.settings.EffectiveSoundVolume())
	}
}
