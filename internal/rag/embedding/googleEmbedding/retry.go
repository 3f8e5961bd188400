package googleEmbedding

import (
	"github.com/docuchat/api/pkg/logger_i"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func doRetry(err error, log *logger_i.Logger) bool {
	if s, ok := status.FromError(err); ok {
		switch s.Code() {
		case codes.ResourceExhausted:
			log.Error("Rate limit hit! ", "error", err)
			return true
		case codes.Unavailable:
			log.Error("Embedding backend unavailable", "error", err)
			return true
		}
	}
	return false
}
