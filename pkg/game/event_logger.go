package game

import (
	"fmt"
	"log"
	"os"
	"time"
)

// EventLogger 追加式 Markdown 事件日志
//
// 每次点击和每次升级写一行表格记录。日志只写不读，
// 写入失败打印警告后继续运行，绝不影响游戏（非致命）。
// 传入空路径时日志完全禁用。
type EventLogger struct {
	path     string
	disabled bool
	nowFunc  func() time.Time
}

// NewEventLogger 创建事件日志并写入表头
// 路径为空时返回禁用的日志器（所有方法为空操作）
func NewEventLogger(path string) *EventLogger {
	l := &EventLogger{
		path:    path,
		nowFunc: time.Now,
	}
	if path == "" {
		l.disabled = true
		return l
	}

	header := fmt.Sprintf("# Whack-a-Zombie Game Log\n\n"+
		"Log started at: %s\n\n"+
		"## Mouse Click Events\n\n"+
		"| Timestamp | Position (x,y) | Result | Details |\n"+
		"|-----------|---------------|--------|----------|\n",
		l.nowFunc().Format("2006-01-02 15:04:05"))

	if err := os.WriteFile(path, []byte(header), 0644); err != nil {
		log.Printf("[EventLog] Warning: failed to initialize log file: %v", err)
	}
	return l
}

// LogClick 记录一次鼠标点击
func (l *EventLogger) LogClick(x, y int, hit bool, details string) {
	result := "MISS"
	if hit {
		result = "HIT"
	}
	l.appendRow(fmt.Sprintf("| %s | (%d, %d) | %s | %s |\n",
		l.timestamp(), x, y, result, details))
}

// LogLevelUp 记录一次升级事件
func (l *EventLogger) LogLevelUp(level int) {
	l.appendRow(fmt.Sprintf("| %s | LEVEL UP | SYSTEM | Reached level %d |\n",
		l.timestamp(), level))
}

func (l *EventLogger) timestamp() string {
	return l.nowFunc().Format("15:04:05.000")
}

// appendRow 追加一行记录，失败时警告并继续
func (l *EventLogger) appendRow(row string) {
	if l.disabled {
		return
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Printf("[EventLog] Warning: failed to open log file: %v", err)
		return
	}
	defer f.Close()

	if _, err := f.WriteString(row); err != nil {
		log.Printf("[EventLog] Warning: failed to write log entry: %v", err)
	}
}
