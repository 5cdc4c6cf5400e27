// Package main provides localization for the rasterkit CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Root command
		"Decode, transform, filter and encode PNG and BMP images.": "PNG/BMP画像のデコード、変換、フィルタ、エンコードを行います。",

		// Convert command
		"Convert an image between PNG and BMP.": "PNGとBMPの間で画像を変換",

		// Apply command
		"Apply a single operation to an image.": "画像に単一の操作を適用",

		// Run command
		"Run a YAML pipeline file.": "YAMLパイプラインファイルを実行",

		// Version command
		"Show version information.": "バージョン情報を表示",
		"rasterkit version %s":      "rasterkit バージョン %s",

		// Flags
		"Input image path (PNG or BMP).":                                    "入力画像パス（PNGまたはBMP）",
		"Output image path; the extension picks the format.":                "出力画像パス（拡張子で形式を指定）",
		"PNG compression level (0-9).":                                      "PNG圧縮レベル（0-9）",
		"Also resample to WxH with the high-quality scaler (e.g., 320x200).": "高品質スケーラーで WxH にリサンプル（例: 320x200）",
		"Draw a caption bar with this text onto the output.":               "出力にキャプションバーを描画",
		"Operation to apply.":                                              "適用する操作",
		"Blur radius (blur).":                                              "ぼかし半径（blur）",
		"Rotation angle in degrees (rotate).":                              "回転角度（度、rotate）",
		"Target width (resize).":                                           "目標幅（resize）",
		"Target height (resize).":                                          "目標高さ（resize）",
		"Scale factor for both axes (scale).":                              "両軸の拡大率（scale）",
		"Bilinear resampling for resize and scale.":                        "resize/scale でバイリニア補間を使用",
		"Pipeline YAML file path.":                                         "パイプラインYAMLファイルのパス",
		"Log level (debug, info, warn, error).":                            "ログレベル（debug, info, warn, error）",
		"Suppress all log output.":                                         "全てのログ出力を抑制",
	})
}
