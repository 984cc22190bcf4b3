package apperrors

// 错误码：1xxx 配置，3xxx 回合操作，4xxx 牌堆
const (
	ErrCodeInvalidConfig   = 1001
	ErrCodeInvalidPlayer   = 1002
	ErrCodeWrongPhase      = 3001
	ErrCodeNotYourTurn     = 3002
	ErrCodeInvalidCard     = 3003
	ErrCodePlayerOptedOut  = 3004
	ErrCodeAlreadyOptedOut = 3005
	ErrCodeDeckExhausted   = 4001
)

// GameError 游戏错误（引擎和 UI 共享）
type GameError struct {
	Code    int
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

// 预定义错误
var (
	ErrInvalidConfig   = &GameError{Code: ErrCodeInvalidConfig, Message: "无效的游戏配置"}
	ErrInvalidPlayer   = &GameError{Code: ErrCodeInvalidPlayer, Message: "玩家不存在"}
	ErrWrongPhase      = &GameError{Code: ErrCodeWrongPhase, Message: "当前阶段不允许该操作"}
	ErrNotYourTurn     = &GameError{Code: ErrCodeNotYourTurn, Message: "还没轮到您"}
	ErrInvalidCard     = &GameError{Code: ErrCodeInvalidCard, Message: "无效的牌"}
	ErrPlayerOptedOut  = &GameError{Code: ErrCodePlayerOptedOut, Message: "该玩家已退出本局"}
	ErrAlreadyOptedOut = &GameError{Code: ErrCodeAlreadyOptedOut, Message: "该玩家已经退出"}
	ErrDeckExhausted   = &GameError{Code: ErrCodeDeckExhausted, Message: "牌堆已发完"}
)
