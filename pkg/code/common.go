package code

// Success notices. %s arguments are filled with WithArgs.
var (
	Success = NewSuss(1, lang{en: "Success", zh_cn: "成功"})

	SuccessShareEmbed      = NewSuss(100, lang{en: "Successfully shared embed to Discord!", zh_cn: "已成功分享 embed 到 Discord！"})
	SuccessShareAttachment = NewSuss(101, lang{en: "Successfully shared %s to Discord!", zh_cn: "已成功分享 %s 到 Discord！"})

	SuccessWebhookAdded    = NewSuss(110, lang{en: "Webhook %s added", zh_cn: "已添加 webhook %s"})
	SuccessWebhookRemoved  = NewSuss(111, lang{en: "Webhook %s removed", zh_cn: "已删除 webhook %s"})
	SuccessSettingsSaved   = NewSuss(112, lang{en: "Settings saved", zh_cn: "设置已保存"})
	SuccessSettingsMigrate = NewSuss(113, lang{en: "Settings migrated to version %s", zh_cn: "设置已迁移到版本 %s"})
)

// Error notices.
var (
	Failed             = NewError(400, lang{en: "Failed", zh_cn: "失败"})
	ErrorInvalidParams = NewError(401, lang{en: "Invalid parameters", zh_cn: "参数错误"})
	ErrorConfigLoad    = NewError(402, lang{en: "Failed to load config", zh_cn: "加载配置失败"})

	// vault / notes
	ErrorNoActiveFile       = NewError(410, lang{en: "No active file found.", zh_cn: "未找到当前文件。"})
	ErrorNoteNotFound       = NewError(411, lang{en: "Note %s not found in vault", zh_cn: "仓库中未找到笔记 %s"})
	ErrorNoteRead           = NewError(412, lang{en: "Failed to read %s", zh_cn: "读取 %s 失败"})
	ErrorMissingMetadata    = NewError(413, lang{en: "Failed to build Discord embed params from file %s.", zh_cn: "无法从文件 %s 构建 Discord embed 参数。"})
	ErrorEmptySelection     = NewError(414, lang{en: "Nothing selected to share", zh_cn: "没有可分享的选中内容"})
	ErrorAttachmentNotFound = NewError(415, lang{en: "File not found", zh_cn: "未找到文件"})
	ErrorAttachmentsFolder  = NewError(416, lang{en: "ERROR! Make sure that you set the Attachments folder to a valid folder in the settings.", zh_cn: "错误！请在设置中将附件文件夹设置为有效的文件夹。"})

	// delivery
	ErrorNoDestination      = NewError(420, lang{en: "No Discord webhook configured. Add one with \"webhook add\".", zh_cn: "未配置 Discord webhook，请使用 \"webhook add\" 添加。"})
	ErrorDestinationUnknown = NewError(421, lang{en: "No webhook named %s", zh_cn: "不存在名为 %s 的 webhook"})
	ErrorEmbedTooLarge      = NewError(422, lang{en: "Failed to share embed to Discord. Attachments must be smaller than 8MB.", zh_cn: "分享 embed 到 Discord 失败，附件必须小于 8MB。"})
	ErrorEmbedFailed        = NewError(423, lang{en: "Failed to share embed to Discord. %s.", zh_cn: "分享 embed 到 Discord 失败。%s。"})
	ErrorAttachmentTooLarge = NewError(424, lang{en: "Failed to share %s to Discord. Attachments must be smaller than 8MB.", zh_cn: "分享 %s 到 Discord 失败，附件必须小于 8MB。"})
	ErrorAttachmentFailed   = NewError(425, lang{en: "Failed to share %s to Discord. %s.", zh_cn: "分享 %s 到 Discord 失败。%s。"})
	ErrorCanceled           = NewError(426, lang{en: "Share canceled", zh_cn: "已取消分享"})

	// settings
	ErrorSettingsLoad      = NewError(430, lang{en: "Failed to load settings", zh_cn: "加载设置失败"})
	ErrorSettingsSave      = NewError(431, lang{en: "Failed to save settings", zh_cn: "保存设置失败"})
	ErrorSettingsInvalid   = NewError(432, lang{en: "Invalid settings", zh_cn: "设置无效"})
	ErrorSettingKeyUnknown = NewError(433, lang{en: "Unknown setting %s", zh_cn: "未知设置项 %s"})
	ErrorWebhookInvalid    = NewError(434, lang{en: "Invalid webhook URL %s", zh_cn: "无效的 webhook 地址 %s"})
	ErrorWebhookExists     = NewError(435, lang{en: "A webhook named %s already exists", zh_cn: "名为 %s 的 webhook 已存在"})
	ErrorFieldNotFound     = NewError(436, lang{en: "No default field named %s", zh_cn: "不存在名为 %s 的默认字段"})
)
