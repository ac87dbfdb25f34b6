package server

const INDEX = `<!DOCTYPE html>
<html>
	<head>
		<meta charset="utf-8">
		<meta name="viewport" content="width=device-width, initial-scale=1.0">
		<title>{{.title}}</title>
		<link rel="stylesheet" href="/style.css">
	</head>
	<body>
		<section id="upload-section">
			<h1>{{.title}}</h1>
			<label>Video <input type="file" id="video-upload" accept="video/*"></label>
			<label>Subtitles <input type="file" id="srt-upload" accept=".srt"></label>
			<p id="status"></p>
			<button id="submit-button">Watch</button>
		</section>
		<section id="video-container">
			<div id="player">
				<video id="video" controls></video>
				<div id="subtitle"></div>
			</div>
		</section>
		<script src="/script.js"></script>
	</body>
</html>
`

const STYLE = `
* {
	margin: 0;
	padding: 0;
	box-sizing: border-box;
}
body {
	font-family: sans-serif;
	background-color: #111;
	color: #eee;
}
#upload-section {
	max-width: 480px;
	margin: 10vh auto;
	display: flex;
	flex-direction: column;
	gap: 16px;
}
#upload-section button {
	padding: 8px;
	font-size: 1.1em;
}
#status {
	min-height: 1.2em;
	color: #aaa;
}
#video-container {
	display: none;
}
#player {
	position: relative;
	max-width: 100vw;
}
#video {
	width: 100%;
	max-height: 100vh;
	background-color: #000;
}
#subtitle {
	position: absolute;
	left: 0;
	right: 0;
	bottom: 60px;
	text-align: center;
	white-space: pre-line;
	font-size: 1.6em;
	text-shadow: 0 0 4px #000, 0 0 2px #000;
	pointer-events: none;
}
`

const SCRIPT = `
const videoUpload = document.getElementById('video-upload');
const srtUpload = document.getElementById('srt-upload');
const submitButton = document.getElementById('submit-button');
const uploadSection = document.getElementById('upload-section');
const videoContainer = document.getElementById('video-container');
const video = document.getElementById('video');
const subtitleElement = document.getElementById('subtitle');
const statusElement = document.getElementById('status');

let socket = null;
let latest = -1;

function setStatus(text) {
	statusElement.innerText = text;
}

function upload(path, field, file) {
	const form = new FormData();
	form.append(field, file);
	return fetch(path, {method: 'POST', body: form}).then(r => r.json().then(body => {
		if (!r.ok) {
			throw new Error(body.error || r.statusText);
		}
		return body;
	}));
}

function showPlayback() {
	uploadSection.style.display = 'none';
	videoContainer.style.display = 'block';
}

function loadVideo() {
	video.src = '/api/video?rev=' + Date.now();
	video.load();
}

function connect() {
	const scheme = location.protocol === 'https:' ? 'wss://' : 'ws://';
	socket = new WebSocket(scheme + location.host + '/socket');
	socket.onmessage = function(e) {
		const msg = JSON.parse(e.data);
		if (msg.time === latest) {
			subtitleElement.textContent = msg.text;
		}
	};
	socket.onclose = function() {
		socket = null;
		setTimeout(connect, 1000);
	};
}

function render(time) {
	latest = time;
	if (socket && socket.readyState === WebSocket.OPEN) {
		socket.send(JSON.stringify({time: time}));
		return;
	}
	fetch('/api/caption?t=' + time).then(r => r.json()).then(msg => {
		if (msg.time === latest) {
			subtitleElement.textContent = msg.text;
		}
	});
}

videoUpload.addEventListener('change', (event) => {
	const file = event.target.files[0];
	if (!file) {
		return;
	}
	setStatus('Uploading video...');
	upload('/api/video', 'video', file).then(() => {
		setStatus('Video loaded: ' + file.name);
		loadVideo();
	}).catch(err => setStatus('Video upload failed: ' + err.message));
});

srtUpload.addEventListener('change', (event) => {
	const file = event.target.files[0];
	if (!file) {
		return;
	}
	upload('/api/subtitles', 'subtitles', file).then(body => {
		setStatus('Subtitles loaded: ' + body.count + ' captions');
	}).catch(err => setStatus('Subtitle upload failed: ' + err.message));
});

submitButton.addEventListener('click', () => {
	fetch('/api/submit', {method: 'POST'}).then(r => r.json().then(body => {
		if (!r.ok) {
			alert(body.error);
			return;
		}
		showPlayback();
	}));
});

video.addEventListener('timeupdate', () => {
	render(video.currentTime);
});

fetch('/api/state').then(r => r.json()).then(state => {
	if (state.video) {
		loadVideo();
		setStatus('Video loaded: ' + state.video.name);
	}
	if (state.view === 'playback') {
		showPlayback();
	}
});

connect();
`
