package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Orchestration level messages (info)
		"Converting %s %dx%d frames (%s, %s)":   "%s %dx%d フレームを変換中 (%s, %s)",
		"Converted %d of %d frames, %d dropped": "%d / %d フレームを変換しました (破棄 %d)",
		"Output saved to %s":                    "出力を %s に保存しました",
		"Interrupted, shutting down...":         "中断されました。シャットダウン中...",

		// Batch stage
		"Converting %d frames with %d workers": "%d フレームを %d ワーカーで変換中",
		"Converted %d of %d frames":            "%d / %d フレームを変換しました",
		"Dropped frame %d: %v":                 "フレーム %d を破棄しました: %v",

		// Snapshot stage
		"Writing %d %s snapshots to %s": "%d 枚の %s スナップショットを %s に書き込み中",
		"Wrote %d bytes":                "%d バイトを書き込みました",

		// GIF stage
		"Encoding %d frames at %.1f fps": "%d フレームを %.1f fps でエンコード中",
		"GIF encoded: %d bytes":          "GIFエンコード完了: %d バイト",

		// Warnings
		"No frames converted, skipping GIF": "変換されたフレームがないため、GIFを省略します",
		"Failed to save debug summary: %s":  "デバッグサマリーの保存に失敗しました: %s",
		"Failed to save debug frame %d: %s": "デバッグフレーム %d の保存に失敗しました: %s",
		"Failed to save debug frame %d: %v": "デバッグフレーム %d の保存に失敗しました: %v",

		// Errors
		"Failed to read frame: %s":      "フレームの読み込みに失敗しました: %s",
		"Failed to write snapshots: %s": "スナップショットの書き込みに失敗しました: %s",
		"Failed to encode GIF: %s":      "GIFのエンコードに失敗しました: %s",
		"Failed to write output: %s":    "出力の書き込みに失敗しました: %s",

		// Summary report
		"Conversion Summary": "変換サマリー",
		"Generated":          "生成日時",
		"Run ID":             "実行ID",
		"Input":              "入力",
		"Item":               "項目",
		"Value":              "値",
		"Source":             "ソース",
		"Size":               "サイズ",
		"Pixel Format":       "ピクセルフォーマット",
		"Color":              "色空間",
		"Frame Rate":         "フレームレート",
		"N/A":                "なし",
		"Frames":             "フレーム",
		"Read":               "読み込み",
		"Converted":          "変換",
		"Dropped":            "破棄",
		"Elapsed":            "所要時間",
		"Dropped Frames":     "破棄されたフレーム",
		"Output":             "出力",
		"Snapshots":          "スナップショット",
		"Animation":          "アニメーション",
		"frames":             "フレーム",
		"Files":              "ファイル数",
		"Bytes Written":      "書き込みバイト数",
	})
}
