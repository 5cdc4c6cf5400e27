package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Command level messages (info)
		"Reading %s":                      "%s を読み込み中",
		"Decoded %s: %dx%d":               "%s をデコードしました: %dx%d",
		"Output saved to %s":              "出力を %s に保存しました",
		"Pipeline completed successfully": "パイプラインが正常に完了しました",
		"Starting pipeline with %d steps": "%d ステップのパイプラインを開始します",

		// Codec component
		"Decoded %s with backend %s":        "%s を %s バックエンドでデコードしました",
		"Encoded %s with backend %s":        "%s を %s バックエンドでエンコードしました",
		"Backend %s rejected %s input: %v":  "%s バックエンドが %s 入力を拒否しました: %v",
		"Encoding %s at compression level %d": "%s を圧縮レベル %d でエンコード中",

		// Operations
		"Applying %s":                          "%s を適用中",
		"Resizing %dx%d to %dx%d":              "%dx%d を %dx%d にリサイズ中",
		"Filtering %d pixels with %d workers":  "%d ピクセルを %d ワーカーでフィルタ中",
		"Step %d/%d: %s":                       "ステップ %d/%d: %s",

		// Warnings
		"Unknown output extension, writing PNG": "不明な出力拡張子のため PNG で書き込みます",

		// Errors
		"Failed to decode input: %s": "入力のデコードに失敗しました: %s",
		"Failed to encode output: %s": "出力のエンコードに失敗しました: %s",
		"Failed to write output: %s": "出力の書き込みに失敗しました: %s",
	})
}
