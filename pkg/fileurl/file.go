package fileurl

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// IsExist determines if the given path exists
// IsExist 判断所给路径是否存在
func IsExist(dst string) bool {
	_, err := os.Stat(dst)
	if err != nil {
		return os.IsExist(err)
	}
	return true
}

// IsDir determines if the given path is a directory
// IsDir 判断所给路径是否为文件夹
func IsDir(path string) bool {
	s, err := os.Stat(path)
	if err != nil {
		return false
	}
	return s.IsDir()
}

// CreatePath creates the parent directories of dst
// CreatePath 创建 dst 的父目录
func CreatePath(dst string, perm os.FileMode) error {
	return os.MkdirAll(filepath.Dir(dst), perm)
}

// FirstExisting returns the first candidate that exists
// FirstExisting 返回第一个存在的路径
func FirstExisting(candidates ...string) (string, bool) {
	for _, c := range candidates {
		if c != "" && IsExist(c) {
			return c, true
		}
	}
	return "", false
}

// WriteIfMissing writes content to dst unless it already exists, creating
// parent directories. It reports whether the file was created.
// WriteIfMissing 文件不存在时写入内容
func WriteIfMissing(dst, content string) (bool, error) {
	if IsExist(dst) {
		return false, nil
	}
	if err := CreatePath(dst, os.ModePerm); err != nil {
		return false, errors.Wrap(err, "create config dir")
	}
	file, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		if os.IsExist(err) {
			return false, nil
		}
		return false, errors.Wrap(err, "create config file")
	}
	defer file.Close()
	if _, err := file.WriteString(content); err != nil {
		return false, errors.Wrap(err, "write config file")
	}
	return true, nil
}
