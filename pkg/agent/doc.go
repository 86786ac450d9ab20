// agent runs a tool-using conversation with a language model.
//
// An agent is, in essence, a control loop. The model is asked for the next
// message of the chat. If that message requests a tool, the tool is invoked
// and its output is appended to the chat, after which the model is asked
// again. The loop is done once the model answers without requesting a tool.
//
// The difference between agent A and agent B is the prompt, the model and
// the available tools.
package agent
