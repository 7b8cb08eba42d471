// Package ai hosts the warehouse assistant: a pre-print batch check for
// QR label runs and a natural-language Q&A over the inventory snapshot.
package ai

import (
	"context"
	"fmt"
	"strings"
)

const analyzePromptTemplate = `
Tôi đang chuẩn bị in tem mã QR cho lô thiết bị có Số Phiếu: "%s".
Dưới đây là danh sách thiết bị trong lô này:
%s

Hãy phân tích ngắn gọn (tối đa 3 câu) về lô này cho tôi biết:
1. Tổng số lượng.
2. Có mã QR nào bị trùng lặp hoặc có vẻ sai định dạng không?
3. Đưa ra một lời khuyên ngắn gọn về việc dán tem.
Trả lời bằng tiếng Việt.
`

const askPromptTemplate = `
Bạn là một trợ lý ảo quản lý kho thông minh. Dưới đây là dữ liệu tóm tắt hiện tại của kho:
%s

Người dùng hỏi: "%s"

Hãy trả lời ngắn gọn, thân thiện và đi thẳng vào vấn đề. Nếu câu hỏi không liên quan đến dữ liệu kho, hãy từ chối lịch sự.
`

// Assistant wraps the Gemini client with the two warehouse prompts.
type Assistant struct {
	client *GeminiClient
}

// NewAssistant builds the assistant. It fails when no API key is set so
// the caller can run without the feature instead of failing per request.
func NewAssistant(ctx context.Context, apiKey, model string) (*Assistant, error) {
	client, err := NewGeminiClient(ctx, apiKey, model)
	if err != nil {
		return nil, err
	}
	return &Assistant{client: client}, nil
}

// Close releases the underlying client.
func (a *Assistant) Close() {
	if a != nil && a.client != nil {
		a.client.Close()
	}
}

// AnalyzeTicket reviews one ticket's label batch before printing. Each
// line describes one device, e.g. "- Device: Monitor (QR: ...)".
func (a *Assistant) AnalyzeTicket(ctx context.Context, ticketID string, deviceLines []string) (string, error) {
	prompt := fmt.Sprintf(analyzePromptTemplate, ticketID, strings.Join(deviceLines, "\n"))
	return a.client.GenerateContent(ctx, prompt)
}

// AskInventory answers a free-form question against the snapshot summary
// block the inventory service produces.
func (a *Assistant) AskInventory(ctx context.Context, question, contextBlock string) (string, error) {
	prompt := fmt.Sprintf(askPromptTemplate, contextBlock, question)
	return a.client.GenerateContent(ctx, prompt)
}
