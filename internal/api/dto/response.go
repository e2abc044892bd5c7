package dto

type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// HealthDTO 健康检查
type HealthDTO struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}
