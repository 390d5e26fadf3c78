package i18n

var chineseTranslations = map[string]string{
	// 生成
	"generate.run":       "运行 %s",
	"generate.template":  "模板：%s",
	"generate.content":   "内容：%s",
	"generate.done":      "演示文稿已保存：%s",
	"generate.summary":   "%d 条记录，%d 张幻灯片，删除了 %d 张模板幻灯片",
	"generate.failed":    "生成失败",
	"generate.cancelled": "已取消，未写入演示文稿",

	// 检查
	"inspect.header":   "%s：共 %d 张幻灯片",
	"inspect.slide":    "幻灯片 %d（%s）",
	"inspect.no_text":  "（无文本框）",
	"inspect.empty":    "（空）",
	"inspect.preview":  "预览",
	"inspect.no_slide": "幻灯片不存在：%d",


	// 配置与日志
	"config.loaded":  "已从 %s 加载配置",
	"config.invalid": "配置无效：%v",
	"log.file":       "日志文件：%s",

	// 错误
	"error.prefix": "错误：%v",
}
