package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Orchestration level messages (info)
		"Encoding %s (job %s)":                              "%s をエンコード中 (ジョブ %s)",
		"Encoded %s to %s":                                  "%s を %s にエンコードしました",
		"Decoding %s (job %s): %s, %dx%d, %d bytes":         "%s をデコード中 (ジョブ %s): %s, %dx%d, %d バイト",
		"Decoded %s to %s":                                  "%s を %s にデコードしました",
		"Found manifest for job %s":                         "ジョブ %s のマニフェストを検出しました",
		"Verified %d frames":                                "%d フレームを検証しました",
		"Interrupted, shutting down...":                     "中断されました。シャットダウン中...",
		"Stage %s finished in %v":                           "ステージ %s が %v で完了しました",
		"No container probe for %s; output is not verified": "%s のコンテナプローブがないため出力を検証しません",
		"No container probe for %s; frame size is not checked against the token": "%s のコンテナプローブがないためフレームサイズをトークンと照合しません",

		// Pack stage
		"Packing %d bytes at %s":                                "%d バイトを %s でパッキング中",
		"Packing %d bytes into %d frames of %s with %d workers": "%d バイトを %d フレーム (%s) に %d ワーカーでパッキング中",
		"Packed %d frames (%d padding bytes)":                   "%d フレームをパッキングしました (パディング %d バイト)",
		"Packing completed":                                     "パッキングが完了しました",

		// Transcode stage
		"Writing %s with %s at %v fps":        "%s を %s (%v fps) で書き込み中",
		"Encoding %d frames at %dx%d with %s": "%d フレームを %dx%d (%s) でエンコード中",
		"Encoded %s (%d bytes)":               "%s をエンコードしました (%d バイト)",

		// Extract stage
		"Probed %s: %dx%d, %d frames, codec %s": "%s を検査: %dx%d, %d フレーム, コーデック %s",
		"Extracted %d frames":                   "%d フレームを抽出しました",
		"Extracted %d frames (expected %d)":     "%d フレームを抽出しました (期待値 %d)",

		// Unpack stage
		"Reassembled %d bytes from %d frames":                 "%d バイトを %d フレームから復元しました",
		"Ignored %d trailing frames beyond the recorded size": "記録サイズを超える末尾の %d フレームを無視しました",

		// Warnings and errors
		"Failed to read input: %s":          "入力の読み込みに失敗しました: %s",
		"Failed to pack frames: %s":         "フレームのパッキングに失敗しました: %s",
		"Failed to encode video: %s":        "動画のエンコードに失敗しました: %s",
		"Failed to parse token %s: %s":      "トークン %s の解析に失敗しました: %s",
		"Failed to write manifest: %s":      "マニフェストの書き込みに失敗しました: %s",
		"Failed to extract frames: %s":      "フレームの抽出に失敗しました: %s",
		"Failed to reassemble file: %s":     "ファイルの復元に失敗しました: %s",
		"Failed to save debug frame %d: %v": "デバッグフレーム %d の保存に失敗しました: %v",
		"Failed to save debug manifest: %s": "デバッグマニフェストの保存に失敗しました: %s",
		"Verification failed: %s":           "検証に失敗しました: %s",
		"Checksum verification failed: %s":  "チェックサムの検証に失敗しました: %s",
	})
}
