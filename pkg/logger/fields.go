package logger

// 统一的日志字段命名常量
// 用于确保整个项目中日志字段命名的一致性，便于日志查询和分析
const (
	// FieldDeliveryID 投递 ID 字段
	FieldDeliveryID = "deliveryId"

	// FieldAction 操作类型字段
	FieldAction = "action"

	// FieldPath 文件路径字段
	FieldPath = "path"

	// FieldVault 仓库路径字段
	FieldVault = "vault"

	// FieldWebhook webhook 描述字段（不记录 URL）
	FieldWebhook = "webhook"

	// FieldStatus HTTP 状态码字段
	FieldStatus = "status"

	// FieldDuration 耗时字段
	FieldDuration = "duration"

	// FieldMethod 方法名称字段
	FieldMethod = "method"

	// FieldError 错误信息字段
	FieldError = "error"

	// FieldSize 文件大小字段
	FieldSize = "size"

	// FieldFiles 附件数量字段
	FieldFiles = "files"

	// FieldVersion 设置版本字段
	FieldVersion = "version"
)
