package util

import "net/url"

// IsValidURL reports whether s is an absolute http or https URL.
// IsValidURL 判断是否为合法的 http(s) 绝对地址
func IsValidURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
