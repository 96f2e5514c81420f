package convert

import (
	"github.com/bytedance/sonic"
	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
)

// DeepCopy returns a copy of src that shares no slices, maps or pointers with it.
// DeepCopy 深拷贝，返回的副本与 src 不共享任何切片、map 或指针
func DeepCopy[T any](src *T) (*T, error) {
	if src == nil {
		return nil, nil
	}
	dst := new(T)
	if err := copier.CopyWithOption(dst, src, copier.Option{DeepCopy: true}); err != nil {
		return nil, errors.Wrap(err, "deep copy")
	}
	return dst, nil
}

/**
 * @Description: 结构体转 map，键名使用 json 标签
 * @param param any 需要被转的数据
 * @return map[string]any
 */
func StructToMap(param any) (map[string]any, error) {
	str, err := sonic.Marshal(param)
	if err != nil {
		return nil, errors.Wrap(err, "marshal struct")
	}
	data := map[string]any{}
	if err := sonic.Unmarshal(str, &data); err != nil {
		return nil, errors.Wrap(err, "unmarshal into map")
	}
	return data, nil
}

// MapToStruct decodes a generic JSON document into dst, leaving fields absent from data untouched.
// MapToStruct 将 map 解码到结构体，map 中缺失的字段保持原值
func MapToStruct(data map[string]any, dst any) error {
	str, err := sonic.Marshal(data)
	if err != nil {
		return errors.Wrap(err, "marshal map")
	}
	if err := sonic.Unmarshal(str, dst); err != nil {
		return errors.Wrap(err, "unmarshal into struct")
	}
	return nil
}
