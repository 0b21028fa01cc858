package engrave

import (
	"encoding/json"
	"os"
)

// WriteDebugJSON 将绘制清单输出为 JSON，便于调试或可视化。
func WriteDebugJSON(score *Score, path string) error {
	if score == nil {
		return nil
	}
	data, err := json.MarshalIndent(score, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
