/*
 * Copyright 2025 Author(s) of sandtimer-mcp
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package consts

const (
	// ProtocolVersion is the protocol version the server offers when the
	// client does not supply one of its own during initialization.
	ProtocolVersion = "2024-05-14"
	// MethodInitialize is the method that starts an MCP session.
	MethodInitialize = "initialize"
	// MethodToolsList is the standard MCP method for listing tools.
	MethodToolsList = "tools/list"
	// MethodToolsCall is the standard MCP method for calling a tool.
	MethodToolsCall = "tools/call"
	// MethodPing is the liveness method; it answers with the current time.
	MethodPing = "ping"
	// MethodShutdown acknowledges a shutdown request. The session itself only
	// ends when the input stream closes.
	MethodShutdown = "shutdown"
	// NotificationServerReady is sent exactly once right after the initialize
	// response to confirm the session is live.
	NotificationServerReady = "notifications/server/ready"
	// NotificationPrefix marks inbound methods that are never answered.
	NotificationPrefix = "notifications/"
)

const (
	// CommandStart is the wire command that starts or restarts a timer.
	CommandStart = "start"
	// CommandReset is the wire command that resets a timer to its original
	// duration.
	CommandReset = "reset"
	// CommandCancel is the wire command that cancels a timer.
	CommandCancel = "cancel"
)
