package security

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// NameSanitizer はユーザー入力の表示名をサニタイズする。
// bluemondayのStrictPolicyにより、すべてのHTMLタグと属性を除去する。
// 表示名はこのシステムで唯一の自由入力テキストフィールドであり、
// 保存前にサニタイズすることでXSSリスクを排除する。
type NameSanitizer struct {
	policy *bluemonday.Policy
}

// NewNameSanitizer はNameSanitizerを生成する。
func NewNameSanitizer() *NameSanitizer {
	return &NameSanitizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// Sanitize は表示名からHTMLタグを除去し、前後の空白を取り除いて返す。
func (s *NameSanitizer) Sanitize(name string) string {
	return strings.TrimSpace(s.policy.Sanitize(name))
}
