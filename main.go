package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ByLCY/stave/engrave"
	"github.com/ByLCY/stave/music"
	canvasrenderer "github.com/ByLCY/stave/renderer/canvas"
	"github.com/ByLCY/stave/sequence"
)

var logger = charmlog.NewWithOptions(os.Stderr, charmlog.Options{
	ReportTimestamp: true,
	TimeFormat:      "15:04:05.00",
	Level:           charmlog.InfoLevel,
})

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:          "stave",
		Short:        "stave 把乐谱模型排版为 SVG 或 PDF 谱面",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger.SetLevel(charmlog.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.AddCommand(newRenderCmd())
	root.AddCommand(newEventsCmd())
	return root
}

func newRenderCmd() *cobra.Command {
	var (
		input      string
		output     string
		configPath string
		debugJSON  string
		fontFlags  []string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "排版一首乐曲并输出谱面文件",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			tune, err := loadTune(input)
			if err != nil {
				return err
			}

			fonts, err := fontResources(cfg, fontFlags)
			if err != nil {
				return err
			}
			format := canvasrenderer.FormatSVG
			if strings.EqualFold(filepath.Ext(output), ".pdf") {
				format = canvasrenderer.FormatPDF
			}
			r := canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{
				Format: format,
				Fonts:  fonts,
			})

			opts := cfg.engraveOptions()
			opts.Measurer = r
			score, err := engrave.Engrave(tune, opts)
			if err != nil {
				return fmt.Errorf("排版失败: %w", err)
			}
			logger.Debug("engraved",
				"paths", len(score.Paths), "lines", len(score.Lines), "texts", len(score.Texts))

			if debugJSON != "" {
				if err := writeDebug(score, debugJSON); err != nil {
					return err
				}
				logger.Info("debug json written", "path", debugJSON)
			}

			data, err := r.Render(score)
			if err != nil {
				return fmt.Errorf("渲染失败: %w", err)
			}
			if err := writeOutput(output, data); err != nil {
				return err
			}
			logger.Info("score written", "path", output, "bytes", len(data))
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "tune.json", "乐谱模型 JSON 路径")
	cmd.Flags().StringVarP(&output, "output", "o", "score.svg", "输出路径（.svg 或 .pdf）")
	cmd.Flags().StringVar(&configPath, "config", "", "TOML 配置路径")
	cmd.Flags().StringVar(&debugJSON, "debug-json", "", "绘制清单调试 JSON 输出路径")
	cmd.Flags().StringArrayVar(&fontFlags, "font", nil, "注入字体，格式 family=path，可重复")
	return cmd
}

func newEventsCmd() *cobra.Command {
	var (
		input  string
		output string
	)
	cmd := &cobra.Command{
		Use:   "events",
		Short: "把乐曲展开为演奏事件流 JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			tune, err := loadTune(input)
			if err != nil {
				return err
			}
			seq, err := sequence.Build(tune)
			if err != nil {
				return fmt.Errorf("展开事件流失败: %w", err)
			}
			data, err := json.MarshalIndent(seq, "", "  ")
			if err != nil {
				return err
			}
			data = append(data, '\n')
			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := writeOutput(output, data); err != nil {
				return err
			}
			logger.Info("events written", "path", output, "events", len(seq.Events))
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "tune.json", "乐谱模型 JSON 路径")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "输出路径，- 表示标准输出")
	return cmd
}

func loadTune(path string) (*music.Tune, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("无法读取乐谱文件 %s: %w", path, err)
	}
	var tune music.Tune
	if err := json.Unmarshal(data, &tune); err != nil {
		return nil, fmt.Errorf("解析乐谱 JSON %s 失败: %w", path, err)
	}
	return &tune, nil
}

// fontResources 合并配置文件与命令行注入的字体。命令行优先。
func fontResources(cfg *Config, flags []string) (map[string]canvasrenderer.Resource, error) {
	fonts := map[string]canvasrenderer.Resource{}
	for name, path := range cfg.Fonts {
		fonts[name] = canvasrenderer.Resource{Path: path}
	}
	for _, f := range flags {
		name, path, ok := strings.Cut(f, "=")
		if !ok || name == "" || path == "" {
			return nil, fmt.Errorf("非法的 --font 参数 %q，格式应为 family=path", f)
		}
		fonts[name] = canvasrenderer.Resource{Path: path}
	}
	return fonts, nil
}

func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("创建输出目录失败: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("写入输出文件失败: %w", err)
	}
	return nil
}

func writeDebug(score *engrave.Score, path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("创建调试目录失败: %w", err)
		}
	}
	if err := engrave.WriteDebugJSON(score, path); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}
