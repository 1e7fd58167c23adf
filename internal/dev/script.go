package dev

import "strings"

// ClientScript returns the browser side of live reload. It connects to
// path, reloads on {"type":"reload"}, and shows an overlay for errors.
// The result is a script body without the surrounding tag.
func ClientScript(path string) string {
	if path == "" {
		path = ReloadPath
	}
	return strings.ReplaceAll(clientScript, "{{path}}", path)
}

const clientScript = `(function() {
    'use strict';

    var reconnectDelay = 1000;
    var maxReconnectDelay = 30000;

    function connect() {
        var protocol = location.protocol === 'https:' ? 'wss:' : 'ws:';
        var ws = new WebSocket(protocol + '//' + location.host + '{{path}}');

        ws.onopen = function() {
            reconnectDelay = 1000;
        };

        ws.onmessage = function(e) {
            var msg;
            try {
                msg = JSON.parse(e.data);
            } catch (err) {
                return;
            }
            switch (msg.type) {
                case 'reload':
                    location.reload();
                    break;
                case 'error':
                    showErrorOverlay(msg.error);
                    break;
                case 'clear':
                    clearErrorOverlay();
                    break;
            }
        };

        ws.onclose = function() {
            setTimeout(function() {
                reconnectDelay = Math.min(reconnectDelay * 2, maxReconnectDelay);
                connect();
            }, reconnectDelay);
        };

        ws.onerror = function() {
            ws.close();
        };
    }

    function showErrorOverlay(error) {
        clearErrorOverlay();
        var overlay = document.createElement('pre');
        overlay.id = 'shwimple-error-overlay';
        overlay.style.cssText = 'position:fixed;inset:0;margin:0;padding:20px;background:rgba(0,0,0,0.9);color:#ff5555;font:14px monospace;white-space:pre-wrap;z-index:999999;';
        overlay.textContent = error;
        document.body.appendChild(overlay);
    }

    function clearErrorOverlay() {
        var overlay = document.getElementById('shwimple-error-overlay');
        if (overlay) {
            overlay.remove();
        }
    }

    if (document.readyState === 'loading') {
        document.addEventListener('DOMContentLoaded', connect);
    } else {
        connect();
    }
})();`
