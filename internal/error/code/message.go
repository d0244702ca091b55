package code

// 错误码消息映射
var codeMessageMap = map[int]string{
	// 通用错误码
	ErrSuccess:          "成功",
	ErrUnknown:          "未知错误",
	ErrBind:             "请求参数绑定错误",
	ErrValidation:       "请求参数验证错误",
	ErrTokenInvalid:     "无效的认证令牌",
	ErrPermissionDenied: "权限不足",
	ErrTooManyRequests:  "请求频率过高",

	// 用户相关错误码
	ErrUserNotFound:          "用户不存在",
	ErrUserAlreadyExist:      "用户已存在",
	ErrUserPasswordIncorrect: "用户密码错误",
	ErrUserDeleteSelf:        "不能删除自己的账户",

	// 房源相关错误码
	ErrLocationNotFound: "房源不存在",
	ErrQRCodeInvalid:    "二维码无效",

	// 活动相关错误码
	ErrActivityNotFound:      "活动不存在",
	ErrActivityTypeInvalid:   "活动类型无效",
	ErrActivityStatusInvalid: "活动状态无效",

	// 考勤相关错误码
	ErrAttendanceNotFound: "考勤记录不存在",

	// 模板相关错误码
	ErrTemplateNotFound: "模板不存在",

	// 库存相关错误码
	ErrInventoryNotFound: "库存物品不存在",

	// 通知相关错误码
	ErrNotificationNotFound: "通知不存在",

	// 邮件相关错误码
	ErrEmailSendFailed: "邮件发送失败",

	// 数据库相关错误码
	ErrDatabase:       "数据库错误",
	ErrRecordNotFound: "记录不存在",
}

// 错误码HTTP状态码映射
var codeStatusMap = map[int]int{
	// 通用错误码
	ErrSuccess:          StatusOK,
	ErrUnknown:          StatusInternalServerError,
	ErrBind:             StatusBadRequest,
	ErrValidation:       StatusBadRequest,
	ErrTokenInvalid:     StatusUnauthorized,
	ErrPermissionDenied: StatusForbidden,
	ErrTooManyRequests:  StatusTooManyRequests,

	// 用户相关错误码
	ErrUserNotFound:          StatusNotFound,
	ErrUserAlreadyExist:      StatusBadRequest,
	ErrUserPasswordIncorrect: StatusUnauthorized,
	ErrUserDeleteSelf:        StatusBadRequest,

	// 房源相关错误码
	ErrLocationNotFound: StatusNotFound,
	ErrQRCodeInvalid:    StatusBadRequest,

	// 活动相关错误码
	ErrActivityNotFound:      StatusNotFound,
	ErrActivityTypeInvalid:   StatusBadRequest,
	ErrActivityStatusInvalid: StatusBadRequest,

	// 考勤相关错误码
	ErrAttendanceNotFound: StatusNotFound,

	// 模板相关错误码
	ErrTemplateNotFound: StatusNotFound,

	// 库存相关错误码
	ErrInventoryNotFound: StatusNotFound,

	// 通知相关错误码
	ErrNotificationNotFound: StatusNotFound,

	// 邮件相关错误码
	ErrEmailSendFailed: StatusInternalServerError,

	// 数据库相关错误码
	ErrDatabase:       StatusInternalServerError,
	ErrRecordNotFound: StatusNotFound,
}

// GetMessage 获取错误码对应的消息
func GetMessage(code int) string {
	if msg, ok := codeMessageMap[code]; ok {
		return msg
	}
	return "未知错误"
}

// GetStatus 获取错误码对应的HTTP状态码
func GetStatus(code int) int {
	if status, ok := codeStatusMap[code]; ok {
		return status
	}
	return StatusInternalServerError
}
