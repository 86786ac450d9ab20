// Package models contains the public data structures shared between the
// model adapter, the tool dispatcher and the agent control loop.
//
// The main entry points are:
//
//   - Chat:    a conversation consisting of ordered Messages.
//   - Message: a single chat message. An assistant message may carry
//     ToolCalls, and a tool message refers back to it via ToolCallID.
//   - LLMTool, Specification, InputSchema, ParameterObject: types that
//     describe and carry calls to tools in the shape OpenAI-compatible
//     chat completion apis expect.
package models
