// Package main provides localization for the bytereel CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Flag categories
		"Configuration":  "設定",
		"Logging":        "ログ",
		"Debug":          "デバッグ",
		"Output":         "出力先",
		"Video":          "動画",
		"Performance":    "性能",
		"Integrity":      "整合性",
		"External tools": "外部ツール",

		// Root command
		"Store files as lossless video frames and restore them":                                                                                 "ファイルをロスレス動画のフレームとして保存し、復元します",
		"bytereel packs the bytes of a file into RGB frames, writes them as a lossless video, and reads the video back into the original file.": "bytereelはファイルのバイト列をRGBフレームに詰め込み、ロスレス動画として書き出し、動画から元のファイルを復元します。",

		// Global flags
		"YAML configuration file":                                                           "YAML設定ファイル",
		"Log level (debug, info, warn, error)":                                              "ログレベル（debug, info, warn, error）",
		"Suppress all log output":                                                           "全てのログ出力を抑制",
		"Save packed frames and manifests for inspection":                                   "パッキングしたフレームとマニフェストを確認用に保存",
		"Directory for debug output":                                                        "デバッグ出力のディレクトリ",
		"Write Prometheus metrics to file (text format)":                                    "Prometheusメトリクスをファイルに出力（テキスト形式）",
		"Output execution summary to file (Markdown, or YAML for .yaml/.yml; - for stdout)": "実行サマリーをファイルに出力（Markdown形式、.yaml/.yml は YAML形式、- で標準出力）",
		"Separator between token fields":                                                    "トークンのフィールド区切り文字",

		// Encode command
		"Pack files into lossless videos": "ファイルをロスレス動画にパッキング",
		"Each file is written to the encoded directory as <name><delimiter><W>x<H><delimiter><size> plus the container extension. Without arguments every file in the input directory is encoded.": "各ファイルは <名前><区切り><W>x<H><区切り><サイズ> にコンテナの拡張子を付けた名前でエンコード先ディレクトリに書き出されます。引数がない場合は入力ディレクトリの全ファイルをエンコードします。",
		"Frame resolution (label, menu key or WxH)":          "フレーム解像度（ラベル、メニュー番号、または WxH）",
		"Lossless codec (ffv1, h264rgb, png, frames)":        "ロスレスコーデック（ffv1, h264rgb, png, frames）",
		"Frame rate of the output video":                     "出力動画のフレームレート",
		"Image format for the frames codec (png, bmp, tiff)": "framesコーデックの画像形式（png, bmp, tiff）",
		"Number of packing workers":                          "パッキングのワーカー数",
		"Encoder threads (0 = encoder default)":              "エンコーダーのスレッド数（0 = エンコーダーの既定値）",
		"Directory scanned when no file is given":            "ファイル指定がない場合に走査するディレクトリ",
		"Directory for encoded videos":                       "エンコード済み動画のディレクトリ",
		"Do not write the manifest sidecar":                  "マニフェストを書き出さない",
		"Do not probe the output after encoding":             "エンコード後に出力を検査しない",
		"Path to ffmpeg executable":                          "ffmpeg実行ファイルのパス",
		"Path to ffprobe executable":                         "ffprobe実行ファイルのパス",
		"Only accept resolutions from the table":             "解像度表にある解像度のみ許可",
		"Run without ffprobe, skipping frame size checks":    "ffprobe なしで実行（フレームサイズの検査を省略）",

		// Decode command
		"Restore files from encoded videos":                                                "エンコード済み動画からファイルを復元",
		"The original name, frame size and byte length are read from the video file name.": "元の名前、フレームサイズ、バイト長は動画のファイル名から読み取られます。",
		"Directory for restored files":                                                     "復元したファイルのディレクトリ",
		"Ignore the manifest sidecar":                                                      "マニフェストを無視",
		"At least one video argument is required":                                          "動画の引数が少なくとも1つ必要です",

		// Resolutions and list commands
		"Show the supported resolutions and their capacity per frame": "対応解像度とフレームあたりの容量を表示",
		"KEY\tLABEL\tSIZE\tBYTES/FRAME":                               "番号\tラベル\tサイズ\tバイト/フレーム",
		"List input files, or encoded videos with --encoded":          "入力ファイル、または --encoded でエンコード済み動画を一覧表示",
		"List encoded videos and their decoded names":                 "エンコード済み動画と復元後の名前を一覧表示",
		"FILE\tBYTES":                      "ファイル\tバイト",
		"VIDEO\tNAME\tSIZE\tBYTES\tFRAMES": "動画\t名前\tサイズ\tバイト\tフレーム",

		// Version command
		"Show version information": "バージョン情報を表示",
		"bytereel version %s":      "bytereel バージョン %s",

		// Runtime messages
		"Failed to encode %s: %s":     "%s のエンコードに失敗しました: %s",
		"Failed to decode %s: %s":     "%s のデコードに失敗しました: %s",
		"Metrics saved to %s":         "メトリクスを %s に保存しました",
		"Failed to write metrics: %s": "メトリクスの書き込みに失敗しました: %s",
		"Summary saved to %s":         "サマリーを %s に保存しました",
		"Failed to write summary: %s": "サマリーの書き込みに失敗しました: %s",

		// Summary content
		"Job Summary":       "ジョブサマリー",
		"Generated":         "生成日時",
		"Settings":          "設定",
		"Jobs":              "ジョブ",
		"No jobs were run.": "実行されたジョブはありません。",
		"Item":              "項目",
		"Value":             "値",
		"Resolution":        "解像度",
		"Codec":             "コーデック",
		"Frame Rate":        "フレームレート",
		"Frame Format":      "フレーム形式",
		"Delimiter":         "区切り文字",
		"Workers":           "ワーカー数",
		"Encode":            "エンコード",
		"Decode":            "デコード",
		"Job ID":            "ジョブID",
		"Input":             "入力",
		"Frames":            "フレーム数",
		"Original Size":     "元のサイズ",
		"Padding":           "パディング",
		"Video Size":        "動画サイズ",
		"Verified":          "検証済み",
		"Yes":               "はい",
		"No":                "いいえ",
		"Elapsed":           "所要時間",
		"Total Payload":     "合計データ量",
		"Generated by":      "生成:",
	})
}
