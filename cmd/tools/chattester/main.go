package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/zhouzirui/clio/backend/internal/model/persona"
	"github.com/zhouzirui/clio/backend/internal/widget"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if err := godotenv.Load(); err != nil {
		log.Printf("[WARN] 无法加载 .env，改用系统环境变量: %v", err)
	}

	defaultURL := os.Getenv("CHAT_PROXY_URL")
	if defaultURL == "" {
		defaultURL = "http://localhost:8080"
	}

	proxyURL := flag.String("url", defaultURL, "聊天代理地址 (不含 /api/chat)")
	query := flag.String("query", "", "单次提问，留空则进入交互模式")
	timeout := flag.Duration("timeout", 15*time.Second, "单次请求超时时间")

	flag.Parse()

	greeting := ""
	if seeds := persona.Seed(); len(seeds) > 0 {
		greeting = seeds[0].Greeting
	}

	session := widget.NewSession(widget.NewClient(*proxyURL, *timeout), greeting)
	session.Open()

	if strings.TrimSpace(*query) != "" {
		ask(session, *query, *timeout)
		printTranscript(session, 1)
		return
	}

	log.Printf("已连接 %s，输入问题后回车发送，输入 /quit 退出", *proxyURL)
	printTranscript(session, 0)

	shown := len(session.Transcript())
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == "/quit" {
			break
		}

		ask(session, line, *timeout)
		printTranscript(session, shown)
		shown = len(session.Transcript())
	}

	if err := scanner.Err(); err != nil {
		log.Fatalf("读取输入失败: %v", err)
	}
}

func ask(session *widget.Session, text string, timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	session.SetDraft(text)
	session.HandleKey(ctx, widget.KeyEnter)
}

// printTranscript 打印 from 之后新增的消息
func printTranscript(session *widget.Session, from int) {
	messages := session.Transcript()
	for i := from; i < len(messages); i++ {
		m := messages[i]
		fmt.Printf("[%s] %s: %s\n", m.Timestamp.Format(time.Kitchen), m.Sender, m.Text)
	}
}
