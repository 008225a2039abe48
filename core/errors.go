package core

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）和消息（Message）
//   - 支持错误检查函数（IsXXX）
//
// 使用场景：
//   - Artifact 错误：MISSING_ARTIFACT, SHAPE_MISMATCH
//   - Catalog 错误：MISSING_CATALOG, INVALID_INPUT
//   - Store 错误：NOT_FOUND, NOT_SUPPORTED
type DomainError struct {
	Code    string // 错误代码（如 "MISSING_ARTIFACT", "NOT_FOUND"）
	Message string // 错误消息
	Module  string // 模块名称（如 "artifact", "catalog", "store"）
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError 创建新的领域错误
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// GetDomainError 获取 DomainError，如果不是则返回 nil
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	if domainErr, ok := err.(*DomainError); ok {
		return domainErr
	}
	return nil
}

// 错误代码常量
const (
	ErrorCodeNotFound        = "NOT_FOUND"         // 资源不存在
	ErrorCodeNotSupported    = "NOT_SUPPORTED"     // 操作不支持
	ErrorCodeInvalidInput    = "INVALID_INPUT"     // 输入无效
	ErrorCodeMissingArtifact = "MISSING_ARTIFACT"  // 打分工件缺失（启动期致命）
	ErrorCodeMissingCatalog  = "MISSING_CATALOG"   // 食物目录缺失（启动期致命）
	ErrorCodeShapeMismatch   = "SHAPE_MISMATCH"    // 特征维度与工件不一致（致命配置错误）
	ErrorCodeInternalError   = "INTERNAL_ERROR"    // 内部错误
)

// 模块名称常量
const (
	ModuleArtifact = "artifact" // 打分工件模块
	ModuleCatalog  = "catalog"  // 食物目录模块
	ModuleStore    = "store"    // 存储模块
	ModuleModel    = "model"    // 模型模块
	ModulePipeline = "pipeline" // 管道模块
)

func hasCode(err error, code string) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == code
	}
	return false
}

// IsNotFound 检查错误是否为 NOT_FOUND
func IsNotFound(err error) bool { return hasCode(err, ErrorCodeNotFound) }

// IsMissingArtifact 检查错误是否为 MISSING_ARTIFACT
func IsMissingArtifact(err error) bool { return hasCode(err, ErrorCodeMissingArtifact) }

// IsMissingCatalog 检查错误是否为 MISSING_CATALOG
func IsMissingCatalog(err error) bool { return hasCode(err, ErrorCodeMissingCatalog) }

// IsShapeMismatch 检查错误是否为 SHAPE_MISMATCH
func IsShapeMismatch(err error) bool { return hasCode(err, ErrorCodeShapeMismatch) }

// IsNotSupported 检查错误是否为 NOT_SUPPORTED
func IsNotSupported(err error) bool { return hasCode(err, ErrorCodeNotSupported) }
