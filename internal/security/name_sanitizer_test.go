package security

import "testing"

func TestNameSanitizer_Sanitize(t *testing.T) {
	s := NewNameSanitizer()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"プレーンテキストはそのまま", "Taro Yamada", "Taro Yamada"},
		{"scriptタグの除去", "<script>alert(1)</script>Taro", "Taro"},
		{"imgタグの除去", `<img src=x onerror=alert(1)>Taro`, "Taro"},
		{"ネストしたタグの除去", "<b><i>Taro</i></b>", "Taro"},
		{"前後の空白の除去", "  Taro  ", "Taro"},
		{"空文字列", "", ""},
		{"タグのみの入力は空になる", "<script></script>", ""},
		{"日本語の表示名", "山田太郎", "山田太郎"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Sanitize(tt.input); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
