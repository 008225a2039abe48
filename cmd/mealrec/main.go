// mealrec 是一次性推荐进程：从 stdin 读取一条 JSON 请求，
// 向 stdout 写出一条 JSON 结果，随后退出。
// 日志与错误对象只写 stderr，stdout 上除结果外不输出任何字节。
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/nutrisolve/mealrec/engine"
)

// demoRequest 是交互式运行（stdin 为 TTY）时使用的演示请求，
// 方便本地直接执行二进制查看效果。
const demoRequest = `{
  "userProfile": {
    "age": 30,
    "gender": "female",
    "primaryGoal": "Weight Loss",
    "dietaryRestrictions": ["Vegan"],
    "weeklyBudget": 100
  },
  "query": "high protein meals",
  "top_k": 5
}`

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath = flag.String("config", engine.DefaultConfigPath, "engine config file")
		logLevel   = flag.String("log-level", "info", "log level (debug/info/warn/error)")
	)
	flag.Parse()

	log := newLogger(*logLevel)

	cfg, err := engine.LoadConfig(*configPath)
	if err != nil {
		return fail(log, err)
	}

	// 工件与目录先于请求读取：加载失败时立即退出，不消费输入
	ctx := context.Background()
	eng, err := engine.Bootstrap(ctx, cfg, log)
	if err != nil {
		return fail(log, err)
	}

	req, err := readRequest()
	if err != nil {
		return fail(log, err)
	}

	result, err := eng.Recommend(ctx, req)
	if err != nil {
		return fail(log, err)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fail(log, err)
	}
	fmt.Fprintln(os.Stdout, string(out))
	return 0
}

// readRequest 从 stdin 读取请求；交互式运行时退回演示请求。
func readRequest() (*engine.Request, error) {
	if isatty.IsTerminal(os.Stdin.Fd()) {
		fmt.Fprintln(os.Stderr, "stdin is a terminal, using demo request")
		return engine.DecodeRequest(strings.NewReader(demoRequest))
	}
	return engine.DecodeRequest(os.Stdin)
}

// fail 把错误对象写到 stderr 并返回非零退出码。stdout 保持干净。
func fail(log zerolog.Logger, err error) int {
	log.Error().Err(err).Msg("request failed")

	body, merr := json.Marshal(engine.ErrorBody{Error: err.Error()})
	if merr == nil {
		fmt.Fprintln(os.Stderr, string(body))
	}
	return 1
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
}
