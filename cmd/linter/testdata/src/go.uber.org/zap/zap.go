package zap

type Logger struct{}

func (l *Logger) Info(msg string)  {}
func (l *Logger) Fatal(msg string) {}

type SugaredLogger struct{}

func (s *SugaredLogger) Infow(msg string, kv ...interface{})  {}
func (s *SugaredLogger) Fatalw(msg string, kv ...interface{}) {}
func (s *SugaredLogger) DPanicf(msg string, a ...interface{}) {}
