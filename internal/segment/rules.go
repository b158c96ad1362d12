package segment

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Placeholder values for descriptions where extraction finds nothing.
const (
	NoColor   = "无颜色"
	NoPattern = "无图案"
)

// Rules holds the merge mappings and the base color dictionary. The
// dictionary grows over runs: colors discovered during extraction are
// appended when the rules are saved back.
type Rules struct {
	ColorMerging    map[string]string `json:"color_merging"`
	PatternMerging  map[string]string `json:"pattern_merging"`
	ColorDictionary ColorDictionary   `json:"color_dictionary"`
}

type ColorDictionary struct {
	Values []string `json:"values"`
}

// DefaultRules returns the built-in rule set used when no rules file
// exists yet.
func DefaultRules() *Rules {
	return &Rules{
		ColorMerging: map[string]string{
			"粉红色":  "粉色",
			"浅灰":   "浅灰色",
			"深黑":   "黑色",
			"米白":   "米色",
			"俄罗斯蓝": "蓝色",
		},
		PatternMerging: map[string]string{
			"彩虹马刺绣": "小马刺绣",
			"战马刺绣":  "战马刺绣",
			"格子纹":   "格子",
			"条纹图案":  "条纹",
			"12543": "MA",
		},
		ColorDictionary: ColorDictionary{
			Values: []string{
				"黑色", "白色", "红色", "蓝色", "绿色", "黄色", "粉色", "紫色",
				"灰色", "棕色", "橙色", "金色", "银色", "青色", "咖啡色", "米色",
				"卡其色", "藏青色", "军绿色", "杏色", "透明", "花色", "椰果白",
				"深蓝", "浅绿", "粉红", "紫红", "雾霾蓝", "豆绿色", "深灰色",
				"浅灰", "卡其",
			},
		},
	}
}

// LoadRules reads the rules file at path. A missing file is created from
// the defaults; a corrupt file is replaced with the defaults. Loading
// never fails the run, it only degrades to the built-in rules.
func LoadRules(path string, logger *zap.Logger) *Rules {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Info("Rules file missing, creating defaults", zap.String("path", path))
		rules := DefaultRules()
		if saveErr := rules.Save(path); saveErr != nil {
			logger.Warn("Failed to write default rules", zap.Error(saveErr))
		}
		return rules
	}
	if err != nil {
		logger.Warn("Failed to read rules file, using defaults",
			zap.String("path", path), zap.Error(err))
		return DefaultRules()
	}

	var rules Rules
	if err := json.Unmarshal(data, &rules); err != nil {
		logger.Warn("Rules file corrupt, resetting to defaults",
			zap.String("path", path), zap.Error(err))
		rules := DefaultRules()
		if saveErr := rules.Save(path); saveErr != nil {
			logger.Warn("Failed to rewrite rules file", zap.Error(saveErr))
		}
		return rules
	}

	// Missing sections fall back to defaults section by section.
	defaults := DefaultRules()
	if rules.ColorMerging == nil {
		logger.Warn("Rules file missing color_merging, using defaults")
		rules.ColorMerging = defaults.ColorMerging
	}
	if rules.PatternMerging == nil {
		logger.Warn("Rules file missing pattern_merging, using defaults")
		rules.PatternMerging = defaults.PatternMerging
	}
	if len(rules.ColorDictionary.Values) == 0 {
		logger.Warn("Rules file missing color_dictionary values, using defaults")
		rules.ColorDictionary = defaults.ColorDictionary
	}
	return &rules
}

// Save writes the rules as indented JSON, creating the directory when
// needed.
func (r *Rules) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create rules directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(r, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal rules: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write rules file: %w", err)
	}
	return nil
}
