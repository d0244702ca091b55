package code

// HTTP状态码.
const (
	// StatusOK - 200: 成功.
	StatusOK = 200
	// StatusBadRequest - 400: 请求参数错误.
	StatusBadRequest = 400
	// StatusUnauthorized - 401: 未授权.
	StatusUnauthorized = 401
	// StatusForbidden - 403: 禁止访问.
	StatusForbidden = 403
	// StatusNotFound - 404: 资源不存在.
	StatusNotFound = 404
	// StatusInternalServerError - 500: 服务器内部错误.
	StatusInternalServerError = 500
	// StatusTooManyRequests - 429: 请求过多.
	StatusTooManyRequests = 429
)

// 通用错误码 (100xxx).
const (
	// ErrSuccess - 200: 成功.
	ErrSuccess int = iota + 100000
	// ErrUnknown - 500: 未知错误.
	ErrUnknown
	// ErrBind - 400: 请求参数绑定错误.
	ErrBind
	// ErrValidation - 400: 请求参数验证错误.
	ErrValidation
	// ErrTokenInvalid - 401: 令牌无效.
	ErrTokenInvalid
	// ErrPermissionDenied - 403: 权限不足.
	ErrPermissionDenied
	// ErrTooManyRequests - 429: 请求频率过高.
	ErrTooManyRequests
)

// 用户相关错误码 (101xxx).
const (
	// ErrUserNotFound - 404: 用户不存在.
	ErrUserNotFound int = iota + 101000
	// ErrUserAlreadyExist - 400: 用户已存在.
	ErrUserAlreadyExist
	// ErrUserPasswordIncorrect - 401: 用户密码错误.
	ErrUserPasswordIncorrect
	// ErrUserDeleteSelf - 400: 不能删除自己的账户.
	ErrUserDeleteSelf
)

// 房源相关错误码 (102xxx).
const (
	// ErrLocationNotFound - 404: 房源不存在.
	ErrLocationNotFound int = iota + 102000
	// ErrQRCodeInvalid - 400: 二维码无效.
	ErrQRCodeInvalid
)

// 活动相关错误码 (103xxx).
const (
	// ErrActivityNotFound - 404: 活动不存在.
	ErrActivityNotFound int = iota + 103000
	// ErrActivityTypeInvalid - 400: 活动类型无效.
	ErrActivityTypeInvalid
	// ErrActivityStatusInvalid - 400: 活动状态无效.
	ErrActivityStatusInvalid
)

// 考勤相关错误码 (104xxx).
const (
	// ErrAttendanceNotFound - 404: 考勤记录不存在.
	ErrAttendanceNotFound int = iota + 104000
)

// 模板相关错误码 (105xxx).
const (
	// ErrTemplateNotFound - 404: 模板不存在.
	ErrTemplateNotFound int = iota + 105000
)

// 库存相关错误码 (106xxx).
const (
	// ErrInventoryNotFound - 404: 库存物品不存在.
	ErrInventoryNotFound int = iota + 106000
)

// 通知相关错误码 (107xxx).
const (
	// ErrNotificationNotFound - 404: 通知不存在.
	ErrNotificationNotFound int = iota + 107000
)

// 邮件相关错误码 (108xxx).
const (
	// ErrEmailSendFailed - 500: 邮件发送失败.
	ErrEmailSendFailed int = iota + 108000
)

// 数据库相关错误码 (109xxx).
const (
	// ErrDatabase - 500: 数据库错误.
	ErrDatabase int = iota + 109000
	// ErrRecordNotFound - 404: 记录不存在.
	ErrRecordNotFound
)
