// Package main provides localization for the yuvsnap CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Flag categories
		"Input":       "入力",
		"Output":      "出力",
		"Sampling":    "サンプリング",
		"Comparison":  "比較",
		"Performance": "性能",
		"Debug":       "デバッグ",
		"Logging":     "ログ",

		// Root command
		"Convert raw YUV frames to RGB images and animations": "生のYUVフレームをRGB画像とアニメーションに変換",

		// Subcommands
		"Convert one YUV frame to an image":                                    "YUVフレーム1枚を画像に変換",
		"Convert a stream of YUV frames to snapshots and an animated GIF":      "YUVフレーム列をスナップショットとアニメーションGIFに変換",
		"Show the same YUV input under two color interpretations side by side": "同じYUV入力を2つの色解釈で並べて表示",
		"Write a synthetic test sequence as y4m or raw YUV":                    "合成テスト映像をy4mまたは生YUVとして出力",

		// Common flags
		"YAML configuration file":                                 "YAML設定ファイル",
		"Capture preset (default, android, apple, jpeg, hd)":      "キャプチャプリセット（default, android, apple, jpeg, hd）",
		"Pixel format (i420, yv12, nv12, nv21, i422, nv16, i444)": "ピクセルフォーマット（i420, yv12, nv12, nv21, i422, nv16, i444）",
		"Frame width in pixels":                                   "フレーム幅（ピクセル）",
		"Frame height in pixels":                                  "フレーム高さ（ピクセル）",
		"Color range (video, full)":                               "色範囲（video, full）",
		"Color matrix (bt601, bt709)":                             "色変換行列（bt601, bt709）",
		"Frame rate of headerless input":                          "ヘッダなし入力のフレームレート",
		"Number of conversion workers (default: CPU count)":       "変換ワーカー数（デフォルト: CPU数）",
		"Log level (debug, info, warn, error)":                    "ログレベル（debug, info, warn, error）",
		"Suppress all log output":                                 "すべてのログ出力を抑制",
		"Enable debug output":                                     "デバッグ出力を有効化",
		"Directory for debug output":                              "デバッグ出力先ディレクトリ",

		// Output flags
		"Image format (png, jpeg, bmp, tiff); inferred from the output extension when omitted": "画像フォーマット（png, jpeg, bmp, tiff）。省略時は出力の拡張子から推定",
		"JPEG quality (1-100)":                                           "JPEG品質（1-100）",
		"Quality preset (low, medium, high)":                             "品質プリセット（low, medium, high）",
		"Output image path (- for stdout)":                               "出力画像パス（- で標準出力）",
		"Output image or .gif path":                                      "出力画像または .gif のパス",
		"Output .y4m or raw file path (- for stdout)":                    "出力 .y4m または生ファイルのパス（- で標準出力）",
		"Directory for still images":                                     "静止画の出力ディレクトリ",
		"Snapshot file name pattern (default: frame-%04d)":               "スナップショットのファイル名パターン（デフォルト: frame-%04d）",
		"Animated GIF output path":                                       "アニメーションGIFの出力パス",
		"GIF frame rate (default: input rate divided by --every)":        "GIFのフレームレート（デフォルト: 入力レート÷--every）",
		"GIF frame rate (default: input rate)":                           "GIFのフレームレート（デフォルト: 入力レート）",
		"Flip images horizontally, as a front camera preview shows them": "前面カメラのプレビューと同じく画像を左右反転",
		"Markdown summary output path":                                   "Markdownサマリーの出力パス",

		// Sampling flags
		"Convert every Nth frame":                                                  "Nフレームごとに変換",
		"Stop after this many input frames (0 = all)":                              "入力フレーム数の上限（0 = すべて）",
		"Stop after this many input frames (0 = all, default: 1 for still images)": "入力フレーム数の上限（0 = すべて、静止画のデフォルト: 1）",

		// Compare flags
		"Color matrix of the left side":                        "左側の色変換行列",
		"Color matrix of the right side":                       "右側の色変換行列",
		"Color range of the left side (default: input range)":  "左側の色範囲（デフォルト: 入力の色範囲）",
		"Color range of the right side (default: input range)": "右側の色範囲（デフォルト: 入力の色範囲）",
		"Gap between the two sides in pixels":                  "左右の間隔（ピクセル）",

		// Pattern flags
		"Number of frames to generate": "生成するフレーム数",

		// Messages
		"Wrote %d %s frames to %s": "%d 枚の %s フレームを %s に書き込みました",
	})
}
